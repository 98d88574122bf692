package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/moneta-labs/moneta/internal/config"
	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/loader"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/moneta-labs/moneta/internal/resource"
	"github.com/spf13/cobra"
)

var (
	checkSettings bool
	checkData     bool
	checkLoad     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&checkSettings, "check-settings", false, "Verify the settings file and values")
	doctorCmd.Flags().BoolVar(&checkData, "check-data", false, "Resolve and validate the distribution and data file")
	doctorCmd.Flags().BoolVar(&checkLoad, "check-load", false, "Load the registry with the current settings")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for currency data and settings",
	Long:  `Run diagnostic checks on Moneta settings and the currency data they point at.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := config.LoaderSettings()
		all := !checkSettings && !checkData && !checkLoad

		var failed bool
		if all || checkSettings {
			failed = runSettingsCheck(out, s) || failed
		}
		if all || checkData {
			r := resource.Default()
			failed = runResourceCheck(cmd.Context(), out, r, "Distribution", s.DistPath, s.KeepDist) || failed
			failed = runResourceCheck(cmd.Context(), out, r, "Data file", s.PrimaryPath, !s.Optional) || failed
		}
		if all || checkLoad {
			failed = runLoadCheck(cmd.Context(), out, s) || failed
		}
		if failed {
			return errors.New("doctor found problems")
		}
		return nil
	},
}

func runSettingsCheck(out io.Writer, s config.Settings) bool {
	fmt.Fprintln(out, "Settings check:")
	failed := false
	if _, err := os.Stat(config.FilePath()); err != nil {
		fmt.Fprintf(out, "  [INFO] %s not found, using defaults\n", config.FilePath())
	} else {
		fmt.Fprintf(out, "  [ OK ] %s\n", config.FilePath())
	}
	if _, err := registry.ParseFields(s.PreserveFields); err != nil {
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", config.KeyPreserveFields, err)
		failed = true
	}
	fmt.Fprintf(out, "  [INFO] keep_dist=%v optional=%v iso_like=%v\n", s.KeepDist, s.Optional, s.ISOLike)
	return failed
}

// runResourceCheck resolves and validates one resource. A missing resource
// is only a failure when required.
func runResourceCheck(ctx context.Context, out io.Writer, r resource.Resolver, label, path string, required bool) bool {
	fmt.Fprintf(out, "%s check: %s\n", label, path)

	data, err := r.Resolve(ctx, path)
	if errors.Is(err, resource.ErrNotFound) {
		if required {
			fmt.Fprintf(out, "  [FAIL] not found\n")
			return true
		}
		fmt.Fprintf(out, "  [INFO] not found (not required)\n")
		return false
	}
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return true
	}

	result, err := dataset.Validate(data)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return true
	}
	if !result.Valid {
		fmt.Fprintf(out, "  [WARN] %d schema issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
		return false
	}
	fmt.Fprintf(out, "  [ OK ] valid\n")
	return false
}

func runLoadCheck(ctx context.Context, out io.Writer, s config.Settings) bool {
	fmt.Fprintln(out, "Load check:")
	opts, err := s.Options(logger)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return true
	}
	r, err := loader.Load(ctx, s.PrimaryPath, opts)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return true
	}
	fmt.Fprintf(out, "  [ OK ] %d currencies, %d domains, data version %q\n", r.Len(), len(r.Domains()), r.Version())
	return false
}
