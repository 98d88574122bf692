// Package dataset handles the currency data files the registry is built
// from. It parses YAML into a loosely typed Config, validates it against an
// embedded JSON schema, normalizes the identifier-keyed branches and expands
// per-currency inline data into the top-level indices.
package dataset
