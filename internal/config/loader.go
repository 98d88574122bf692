package config

import (
	"fmt"
	"strings"

	"github.com/moneta-labs/moneta/internal/loader"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Settings are the loader-related settings after defaults, file and
// environment have been applied.
type Settings struct {
	PrimaryPath    string
	DistPath       string
	KeepDist       bool
	Optional       bool
	PreserveFields []string
	ISOLike        bool
	Verbose        bool
	LogLevel       string
}

// LoaderSettings reads the loader-related settings. Call Load first.
func LoaderSettings() Settings {
	return Settings{
		PrimaryPath:    viper.GetString(KeyPrimaryPath),
		DistPath:       viper.GetString(KeyDistPath),
		KeepDist:       viper.GetBool(KeyKeepDist),
		Optional:       viper.GetBool(KeyOptional),
		PreserveFields: splitList(viper.GetString(KeyPreserveFields)),
		ISOLike:        viper.GetBool(KeyISOLike),
		Verbose:        viper.GetBool(KeyVerbose),
		LogLevel:       viper.GetString(KeyLogLevel),
	}
}

// Options maps the settings onto loader options.
func (s Settings) Options(logger zerolog.Logger) (loader.Options, error) {
	fields, err := registry.ParseFields(s.PreserveFields)
	if err != nil {
		return loader.Options{}, fmt.Errorf("reading %s: %w", KeyPreserveFields, err)
	}
	return loader.Options{
		KeepDist: s.KeepDist,
		DistPath: s.DistPath,
		Optional: s.Optional,
		Merge: registry.MergeOptions{
			PreserveFields: fields,
			ISOLike:        s.ISOLike,
		},
		Logger:  logger,
		Verbose: s.Verbose,
	}, nil
}

// Level parses LogLevel, falling back to info.
func (s Settings) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s.LogLevel)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
