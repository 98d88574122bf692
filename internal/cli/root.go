package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/moneta-labs/moneta/internal/branding"
	"github.com/moneta-labs/moneta/internal/config"
	"github.com/moneta-labs/moneta/internal/loader"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` loads currency reference data (ISO 4217 and beyond), overlays
user data on the built-in distribution, and answers lookups by code, numeric code,
country and locale.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		s := config.LoaderSettings()
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(s.Level()).
			With().Timestamp().Logger()
		if s.Verbose {
			logger = logger.Level(zerolog.DebugLevel)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Currency data file (default \"moneta/config.yaml\")")
	flags.Bool("keep-dist", true, "Overlay the data file on the built-in distribution")
	flags.Bool("optional", true, "Do not fail when the data file is missing")
	flags.Bool("iso-like", false, "Only let the data file change ISO-like currencies")
	flags.String("preserve", "", "Comma-separated registry fields kept from the distribution (e.g. weights,version)")
	flags.BoolP("verbose", "v", false, "Log dropped entries and merge decisions")

	bind := map[string]string{
		config.KeyPrimaryPath:    "config",
		config.KeyKeepDist:       "keep-dist",
		config.KeyOptional:       "optional",
		config.KeyISOLike:        "iso-like",
		config.KeyPreserveFields: "preserve",
		config.KeyVerbose:        "verbose",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// loadRegistry loads the registry described by the current settings and
// publishes it as the process default.
func loadRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	s := config.LoaderSettings()
	opts, err := s.Options(logger)
	if err != nil {
		return nil, err
	}
	r, err := loader.LoadAndPublish(cmd.Context(), s.PrimaryPath, opts)
	if err != nil {
		return nil, fmt.Errorf("loading currency registry: %w", err)
	}
	return r, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
