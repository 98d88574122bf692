package cli

import (
	"fmt"

	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/spf13/cobra"
)

var (
	listDomainFilter string
	listJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List currencies",
	Long: `List every currency in the registry, or the canonical-first collision
group of one domain with --domain.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listDomainFilter, "domain", "", "List one domain, canonical currency first")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	r, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	currencies := r.Currencies()
	if listDomainFilter != "" {
		currencies = r.DomainGroup(registry.Domain(listDomainFilter))
	}
	if len(currencies) == 0 {
		if listDomainFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No currencies in domain %s. Known domains: %v\n", listDomainFilter, r.Domains())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No currencies loaded.")
		}
		return nil
	}

	entries := make([]searchEntry, 0, len(currencies))
	for _, c := range currencies {
		entries = append(entries, entryOf(r, c, "en"))
	}

	if listJSON {
		return printSearchJSON(cmd.OutOrStdout(), entries)
	}
	return printSearchTable(cmd.OutOrStdout(), entries)
}
