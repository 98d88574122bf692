// Package registry holds the immutable, multi-indexed currency registry.
// It builds registries from prepared dataset configs, resolves canonical
// currencies inside code/numeric/domain collision groups by weight, and
// overlays one registry on another under an explicit merge policy.
//
// A Registry is never mutated after Build or Merge returns; every update
// produces a fresh value that can be shared freely between goroutines.
package registry
