package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/moneta-labs/moneta/internal/ident"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/spf13/cobra"
)

var (
	searchDomainFilter string
	searchKindFilter   string
	searchTraitFilter  string
	searchLocale       string
	searchJSON         bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search currencies",
	Long: `Search currencies by identifier, code, numeric code or localized name.

The query matches case-insensitively as a substring. Use --domain, --kind and
--trait to narrow the results; kinds and traits also match through their
hierarchies (--kind digital finds tokens and stablecoins).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchDomainFilter, "domain", "", "Filter by domain (e.g., ISO-4217, CRYPTO)")
	searchCmd.Flags().StringVar(&searchKindFilter, "kind", "", "Filter by kind (e.g., fiat, token)")
	searchCmd.Flags().StringVar(&searchTraitFilter, "trait", "", "Filter by traits (comma-separated, matches any)")
	searchCmd.Flags().StringVar(&searchLocale, "locale", "en", "Locale used for names")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

// searchFilter holds the AND-combined search criteria.
type searchFilter struct {
	Query  string
	Domain string
	Kind   string
	Traits []ident.ID
	Locale string
}

// searchEntry represents a currency for display.
type searchEntry struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Numeric int    `json:"numeric,omitempty"`
	Domain  string `json:"domain"`
	Name    string `json:"name,omitempty"`
	Weight  int    `json:"weight"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	f := searchFilter{
		Domain: searchDomainFilter,
		Kind:   searchKindFilter,
		Traits: parseTraits(searchTraitFilter),
		Locale: searchLocale,
	}
	if len(args) > 0 {
		f.Query = args[0]
	}

	r, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	entries := searchCurrencies(r, f)

	if len(entries) == 0 {
		msg := "No currencies found"
		if f.Query != "" {
			msg += fmt.Sprintf(" matching %q", f.Query)
		}
		if f.Domain != "" {
			msg += fmt.Sprintf(" with --domain=%s", f.Domain)
		}
		if f.Kind != "" {
			msg += fmt.Sprintf(" with --kind=%s", f.Kind)
		}
		if searchTraitFilter != "" {
			msg += fmt.Sprintf(" with --trait=%s", searchTraitFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		return printSearchJSON(cmd.OutOrStdout(), entries)
	}
	return printSearchTable(cmd.OutOrStdout(), entries)
}

func parseTraits(s string) []ident.ID {
	var out []ident.ID
	for _, t := range strings.Split(s, ",") {
		if id, ok := ident.Normalize(t); ok {
			out = append(out, id)
		}
	}
	return out
}

func searchCurrencies(r *registry.Registry, f searchFilter) []searchEntry {
	var entries []searchEntry
	for _, c := range r.Currencies() {
		if !matchesSearch(r, c, f) {
			continue
		}
		entries = append(entries, entryOf(r, c, f.Locale))
	}
	return entries
}

func entryOf(r *registry.Registry, c registry.Currency, locale string) searchEntry {
	e := searchEntry{
		ID:     c.ID.String(),
		Code:   c.Code,
		Domain: string(c.Domain),
		Weight: r.Weight(c.ID),
	}
	if c.HasNumeric() {
		e.Numeric = c.Numeric
	}
	if name, ok := r.Property(c.ID, locale, "name"); ok {
		e.Name = name.String()
	}
	return e
}

// matchesSearch returns true if the currency matches all provided filters.
func matchesSearch(r *registry.Registry, c registry.Currency, f searchFilter) bool {
	if f.Domain != "" && !strings.EqualFold(string(c.Domain), f.Domain) {
		return false
	}

	if f.Kind != "" {
		kind, ok := ident.Normalize(f.Kind)
		if !ok || !r.OfKind(c, kind) {
			return false
		}
	}

	// Traits match any.
	if len(f.Traits) > 0 {
		found := false
		for _, t := range f.Traits {
			if r.HasTrait(c.ID, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		fields := []string{c.ID.String(), c.Code}
		if c.HasNumeric() {
			fields = append(fields, fmt.Sprintf("%03d", c.Numeric))
		}
		if name, ok := r.Property(c.ID, f.Locale, "name"); ok {
			fields = append(fields, name.String())
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}

	return true
}

func printSearchTable(out io.Writer, entries []searchEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNUMERIC\tDOMAIN\tNAME")
	for _, e := range entries {
		numeric := "-"
		if e.Numeric > 0 {
			numeric = fmt.Sprintf("%03d", e.Numeric)
		}
		name := e.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Code, numeric, e.Domain, name)
	}
	return w.Flush()
}

func printSearchJSON(out io.Writer, entries []searchEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
