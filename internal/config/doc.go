// Package config manages user-level settings stored at ~/.moneta/config.yaml.
// It provides functions to load, read, and write configuration keys and
// turns the loader-related ones into loader options.
package config
