package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/moneta-labs/moneta/internal/attr"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/spf13/cobra"
)

var (
	showLocale string
	showJSON   bool
)

var showCmd = &cobra.Command{
	Use:   "show <id|code>",
	Short: "Show a currency",
	Long: `Show a currency by identifier (e.g. crypto/ETH) or by code (e.g. EUR).
Codes shared by several currencies resolve to the canonical one, chosen by weight.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showLocale, "locale", "en", "Locale for localized properties")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

// currencyView is a currency with its registry context, for display.
type currencyView struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	Numeric    int            `json:"numeric,omitempty"`
	Scale      *int           `json:"scale,omitempty"`
	Domain     string         `json:"domain"`
	Kind       string         `json:"kind,omitempty"`
	Weight     int            `json:"weight"`
	Name       string         `json:"name,omitempty"`
	Symbol     string         `json:"symbol,omitempty"`
	Countries  []string       `json:"countries,omitempty"`
	Traits     []string       `json:"traits,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	Collisions []string       `json:"collisions,omitempty"`
}

func runShow(cmd *cobra.Command, args []string) error {
	r, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	c, ok := r.Lookup(args[0])
	if !ok {
		return fmt.Errorf("currency %q not found", args[0])
	}
	v := viewOf(r, c, showLocale)
	if showJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return printCurrency(cmd.OutOrStdout(), v)
}

func viewOf(r *registry.Registry, c registry.Currency, locale string) currencyView {
	v := currencyView{
		ID:     c.ID.String(),
		Code:   c.Code,
		Domain: string(c.Domain),
		Weight: r.Weight(c.ID),
	}
	if c.HasNumeric() {
		v.Numeric = c.Numeric
	}
	if c.HasFixedScale() {
		scale := c.Scale
		v.Scale = &scale
	}
	if !c.Kind.IsZero() {
		v.Kind = c.Kind.String()
	}
	if name, ok := r.Property(c.ID, locale, "name"); ok {
		v.Name = name.String()
	}
	if sym, ok := r.Property(c.ID, locale, "symbol"); ok {
		v.Symbol = sym.String()
	}
	for _, country := range r.Countries(c.ID) {
		v.Countries = append(v.Countries, country.String())
	}
	for _, t := range r.Traits(c.ID) {
		v.Traits = append(v.Traits, t.String())
	}
	if len(c.Extensions) > 0 {
		v.Extensions = make(map[string]any, len(c.Extensions))
		for _, k := range c.Extensions.Keys() {
			v.Extensions[k] = c.Extensions[k].Any()
		}
	}
	for _, other := range r.CodeGroup(c.Code) {
		if other.ID != c.ID {
			v.Collisions = append(v.Collisions, other.ID.String())
		}
	}
	return v
}

func printCurrency(out io.Writer, v currencyView) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s\t%s\n", label, value)
		}
	}
	row("ID", v.ID)
	row("Code", v.Code)
	numeric := "-"
	if v.Numeric > 0 {
		numeric = fmt.Sprintf("%03d", v.Numeric)
	}
	row("Numeric", numeric)
	scale := "auto"
	if v.Scale != nil {
		scale = fmt.Sprint(*v.Scale)
	}
	row("Scale", scale)
	row("Domain", v.Domain)
	row("Kind", v.Kind)
	row("Weight", fmt.Sprint(v.Weight))
	row("Name", v.Name)
	row("Symbol", v.Symbol)
	row("Countries", strings.Join(v.Countries, ", "))
	row("Traits", strings.Join(v.Traits, ", "))
	for _, k := range slices.Sorted(maps.Keys(v.Extensions)) {
		row(k, attr.From(v.Extensions[k]).String())
	}
	row("Also", strings.Join(v.Collisions, ", "))
	return w.Flush()
}
