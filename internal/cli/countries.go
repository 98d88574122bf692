package cli

import (
	"fmt"

	"github.com/moneta-labs/moneta/internal/ident"
	"github.com/spf13/cobra"
)

var countriesCmd = &cobra.Command{
	Use:   "countries <id|code|country>",
	Short: "List the countries using a currency, or the currency of a country",
	Long: `With a currency identifier or code, list the countries that use it.
With a country code that is not a currency, print the currency used there.`,
	Args: cobra.ExactArgs(1),
	RunE: runCountries,
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	r, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if c, ok := r.Lookup(args[0]); ok {
		countries := r.Countries(c.ID)
		if len(countries) == 0 {
			fmt.Fprintf(out, "No countries use %s.\n", c.ID)
			return nil
		}
		for _, country := range countries {
			fmt.Fprintln(out, country)
		}
		return nil
	}

	country, ok := ident.Normalize(args[0])
	if !ok {
		return fmt.Errorf("invalid identifier %q", args[0])
	}
	c, ok := r.ByCountry(country)
	if !ok {
		return fmt.Errorf("no currency or country %q", args[0])
	}
	fmt.Fprintln(out, c.ID)
	return nil
}
