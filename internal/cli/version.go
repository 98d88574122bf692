package cli

import (
	"encoding/json"
	"fmt"

	"github.com/moneta-labs/moneta/internal/branding"
	"github.com/moneta-labs/moneta/internal/config"
	"github.com/moneta-labs/moneta/internal/loader"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the CLI build and the version of the currency data in effect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		}

		dataVersion := "-"
		if r, err := loadRegistry(cmd); err == nil && r.Version() != "" {
			dataVersion = r.Version()
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
				"data":    dataVersion,
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s, data: %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate, dataVersion)
		if note := dataVersionNote(dataVersion, distVersion(cmd)); note != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note:", note)
		}
		return nil
	},
}

func distVersion(cmd *cobra.Command) string {
	s := config.LoaderSettings()
	r, err := loader.Load(cmd.Context(), s.DistPath, loader.Options{Optional: true, Logger: logger})
	if err != nil {
		return ""
	}
	return r.Version()
}

// dataVersionNote compares the data in effect with the built-in distribution.
func dataVersionNote(current, dist string) string {
	if current == "" || dist == "" || current == dist {
		return ""
	}
	cmp, err := registry.CompareVersions(current, dist)
	if err != nil {
		return ""
	}
	if cmp < 0 {
		return fmt.Sprintf("data %s is older than the built-in distribution %s", current, dist)
	}
	return ""
}
