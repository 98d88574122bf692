// Package ident defines the canonical currency identifier and the single
// conversion that turns loosely typed configuration keys (strings, symbols,
// keywords, numbers) into it.
package ident
