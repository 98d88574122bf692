package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moneta-labs/moneta/internal/branding"
	"github.com/moneta-labs/moneta/internal/resource"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyPrimaryPath    = "primary_path"
	KeyDistPath       = "dist_path"
	KeyKeepDist       = "keep_dist"
	KeyOptional       = "optional"
	KeyPreserveFields = "preserve_fields"
	KeyISOLike        = "iso_like"
	KeyVerbose        = "verbose"
	KeyLogLevel       = "log_level"
)

// Keys lists every recognized setting.
func Keys() []string {
	return []string{
		KeyPrimaryPath, KeyDistPath, KeyKeepDist, KeyOptional,
		KeyPreserveFields, KeyISOLike, KeyVerbose, KeyLogLevel,
	}
}

// Dir returns the path to the Moneta config directory (~/.moneta/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.moneta/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyPrimaryPath, resource.DefaultPrimaryPath)
	viper.SetDefault(KeyDistPath, resource.DefaultDistPath)
	viper.SetDefault(KeyKeepDist, true)
	viper.SetDefault(KeyOptional, true)
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !known(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
