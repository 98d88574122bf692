package cli

import (
	"fmt"
	"path/filepath"

	"github.com/moneta-labs/moneta/internal/branding"
	"github.com/moneta-labs/moneta/internal/config"
	"github.com/moneta-labs/moneta/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	initDir      string
	initCurrency string
	initVersion  string
	initForce    bool
)

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory the data file path is resolved against")
	initCmd.Flags().StringVar(&initCurrency, "currency", "", "Starter currency to add, e.g. PLN or crypto/TOKEN")
	initCmd.Flags().StringVar(&initVersion, "data-version", "0.1.0", "Version recorded in the data file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing data file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter currency data file",
	Long: `Create a starter currency data file at the configured primary path
(default "moneta/config.yaml"). The file overlays the built-in distribution and
is validated against the schema after it is written.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := config.LoaderSettings()

	path := s.PrimaryPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(initDir, path)
	}

	data, err := scaffold.NewData(filepath.Base(absOr(initDir)), initCurrency)
	if err != nil {
		return err
	}
	data.Version = initVersion

	result, err := scaffold.Generate(data, path, initForce)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s\n", result.Path)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	fmt.Fprintf(out, "\nRun '%s validate %s' after editing.\n", branding.CLIName(), result.Path)
	return nil
}

func absOr(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
