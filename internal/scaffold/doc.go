// Package scaffold writes starter currency data files from embedded templates.
// It powers the "moneta init" command, producing a primary data file that
// overlays the shipped distribution and passes schema validation.
package scaffold
