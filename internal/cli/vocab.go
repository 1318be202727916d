package cli

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ppiankov/claimguard/internal/vocab"
)

var vocabDomainFlag string

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List the domain vocabulary",
	Long: `Vocab lists the domains, exposures, outcomes and confounders the SCM
builder aligns claims against. Pass --domain for one domain's full table.

Example:
  claimguard vocab
  claimguard vocab --domain finance`,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)

	vocabCmd.Flags().StringVar(&vocabDomainFlag, "domain", "", "show one domain in full")
}

func runVocab(cmd *cobra.Command, args []string) error {
	table, err := vocab.New(cfg.Vocab)
	if err != nil {
		return eris.Wrap(err, "load vocabulary")
	}

	if vocabDomainFlag != "" {
		entries, ok := table.Exposures(vocabDomainFlag)
		if !ok {
			return fmt.Errorf("unknown domain %q (known: %s)", vocabDomainFlag, strings.Join(table.Domains(), ", "))
		}
		printDomain(table.ResolveName(vocabDomainFlag), entries, table.DefaultDomain())
		return nil
	}

	for _, name := range table.Domains() {
		entries, _ := table.Exposures(name)
		printDomain(name, entries, table.DefaultDomain())
		fmt.Println()
	}

	return nil
}

func printDomain(name string, entries []vocab.Exposure, defaultDomain string) {
	if name == defaultDomain {
		fmt.Printf("%s (default)\n", name)
	} else {
		fmt.Printf("%s\n", name)
	}

	for _, e := range entries {
		fmt.Printf("  %s\n", e.Name)
		fmt.Printf("    outcomes:    %s\n", strings.Join(e.Outcomes, ", "))
		fmt.Printf("    confounders: %s\n", strings.Join(e.Confounders, ", "))
	}
}
