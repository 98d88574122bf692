package cli

import (
	"fmt"

	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a currency data file",
	Long: `Check a currency data file against the schema, then build it and report
entries that would be dropped (unknown currencies, blank identifiers, bad weights).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	result, err := dataset.ValidateFile(path)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  schema: %s\n", issue)
	}

	cfg, err := dataset.ParseFile(path)
	if err != nil {
		return err
	}
	var drops []dataset.Drop
	r := registry.Build(cfg, registry.WithReport(func(d dataset.Drop) {
		drops = append(drops, d)
	}))
	for _, d := range drops {
		fmt.Fprintf(out, "  dropped: %s %v (%s)\n", d.Branch, d.Key, d.Reason)
	}

	if !result.Valid {
		return fmt.Errorf("%s: %d schema issue(s)", path, len(result.Issues))
	}
	fmt.Fprintf(out, "%s is valid: %d currencies, %d dropped entries\n", path, r.Len(), len(drops))
	return nil
}
