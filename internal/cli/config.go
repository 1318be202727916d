package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/claimguard/internal/model"
)

// loadConfig reads configuration from file, environment and defaults.
// An explicit path must exist; the default search locations are optional.
func loadConfig(path string) (*model.Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".claimguard"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment
	v.SetEnvPrefix("CLAIMGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// setDefaults registers every default from model.DefaultConfig so that a
// partial config file or environment override keeps the rest intact
func setDefaults(v *viper.Viper) {
	def := model.DefaultConfig()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.cors_origins", def.Server.CORSOrigins)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)

	v.SetDefault("http.timeout", def.HTTP.Timeout)
	v.SetDefault("http.user_agent", def.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", def.HTTP.MaxBodyBytes)
	v.SetDefault("http.insecure_tls", def.HTTP.InsecureTLS)
	v.SetDefault("http.respect_robots", def.HTTP.RespectRobots)
	v.SetDefault("http.rate_per_host", def.HTTP.RatePerHost)
	v.SetDefault("http.rate_burst", def.HTTP.RateBurst)
	v.SetDefault("http.http_proxy", def.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", def.HTTP.HTTPSProxy)
	v.SetDefault("http.no_proxy", def.HTTP.NoProxy)

	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.dir", def.Cache.Dir)
	v.SetDefault("cache.ttl", def.Cache.TTL)

	v.SetDefault("vocab.default_domain", def.Vocab.DefaultDomain)
	v.SetDefault("vocab.file", def.Vocab.File)

	v.SetDefault("trust.aggregation", def.Trust.Aggregation)

	v.SetDefault("signals.academic_tlds", def.Signals.AcademicTLDs)
	v.SetDefault("signals.gov_tlds", def.Signals.GovTLDs)
	v.SetDefault("signals.news_hints", def.Signals.NewsHints)
	v.SetDefault("signals.blog_hints", def.Signals.BlogHints)

	v.SetDefault("concurrency.signal_workers", def.Concurrency.SignalWorkers)
	v.SetDefault("concurrency.batch_workers", def.Concurrency.BatchWorkers)

	v.SetDefault("llm.provider", def.LLM.Provider)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("llm.api_key", def.LLM.APIKey)
	v.SetDefault("llm.base_url", def.LLM.BaseURL)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetDefault("output.verbose", def.Output.Verbose)
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ClaimGuard configuration",
	Long: `Manage ClaimGuard configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CLAIMGUARD_*)
3. Config file (~/.claimguard/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return eris.Wrap(err, "config: marshal")
		}

		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("  Current Configuration")
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()
		fmt.Println(string(yamlData))
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()
		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (CLAIMGUARD_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
		fmt.Println("  3. Config file (~/.claimguard/config.yaml)")
		fmt.Println("  4. Defaults")
		fmt.Println()

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.claimguard/config.yaml with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return eris.Wrap(err, "config: find home directory")
		}

		configDir := filepath.Join(home, ".claimguard")
		configPath := filepath.Join(configDir, "config.yaml")

		// Refuse to clobber an existing file
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'claimguard config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return eris.Wrap(err, "config: create directory")
		}

		f, err := os.Create(configPath)
		if err != nil {
			return eris.Wrap(err, "config: create file")
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = eris.Wrap(closeErr, "config: close file")
			}
		}()

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return eris.Wrap(err, "config: marshal defaults")
		}

		header := `# ClaimGuard Configuration File
# See https://github.com/ppiankov/claimguard for full documentation
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (CLAIMGUARD_*)
#   3. This config file
#   4. Built-in defaults

`
		footer := `
# API keys (recommended to use environment variables instead):
#   export OPENAI_API_KEY=sk-...
#   export ANTHROPIC_API_KEY=sk-ant-...
`

		for _, chunk := range [][]byte{[]byte(header), yamlData, []byte(footer)} {
			if _, err := f.Write(chunk); err != nil {
				return eris.Wrap(err, "config: write file")
			}
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  claimguard config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n", configPath)
		fmt.Printf("\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
