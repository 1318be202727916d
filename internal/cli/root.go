package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/util"
)

// version is stamped into the version command and the server identity
const version = "0.1.0"

var (
	cfgFile string
	verbose bool

	// cfg is loaded before any command runs; flags override it per command
	cfg *model.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimguard",
	Short: "ClaimGuard - causal claim triage on Pearl's ladder (non-normative)",
	Long: `ClaimGuard is an open-source diagnostic tool for triaging causal claims.

It does not determine whether a claim is true.

ClaimGuard places a claim on Pearl's causal ladder, sketches a structural
causal model template for it, checks whether the claimed effect is
identifiable from observational data, and scores how much the provided
evidence sources can be trusted.

ClaimGuard is a mirror, not an oracle.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for ClaimGuard.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimguard v" + version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimguard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads the configuration and wires the global logger. Load
// failures fall back to defaults so informational commands keep working.
func initConfig() {
	loaded, err := loadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		loaded = model.DefaultConfig()
	}
	cfg = loaded

	if verbose {
		cfg.Output.Verbose = true
	}

	if err := util.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
	}
}
