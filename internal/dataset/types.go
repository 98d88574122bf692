package dataset

import "github.com/moneta-labs/moneta/internal/ident"

// Config is a parsed currency data file. Known branches are rewritten by
// Normalize into the typed shapes below; everything else is left as decoded.
//
//	currencies  map[ident.ID]any          (attribute maps, untouched)
//	countries   map[ident.ID]ident.ID     (country -> currency)
//	localized   map[ident.ID]Localized
//	traits      map[ident.ID][]ident.ID
//	weights     map[ident.ID]int
type Config map[string]any

// Top-level branch names.
const (
	BranchVersion       = "version"
	BranchCurrencies    = "currencies"
	BranchCountries     = "countries"
	BranchLocalized     = "localized"
	BranchTraits        = "traits"
	BranchWeights       = "weights"
	BranchPropagateKeys = "propagateKeys"
	BranchHierarchies   = "hierarchies"
	BranchExt           = "ext"
)

// Inline attribute keys read from a currency entry.
const (
	KeyCountries    = "countries"
	KeyLocalized    = "localized"
	KeyTraits       = "traits"
	KeyWeight       = "weight"
	KeyLegacyWeight = "we"
)

// DefaultLocale is the locale key used for locale-independent properties.
const DefaultLocale = "*"

// Properties maps a property name (name, symbol, ...) to its value.
type Properties map[string]any

// Localized maps a canonical locale tag to properties.
type Localized map[string]Properties

// Set is an unordered collection accepted wherever a sequence is. It is
// linearized by canonical string form before use.
type Set map[any]struct{}

// NewSet returns a Set holding xs.
func NewSet(xs ...any) Set {
	s := make(Set, len(xs))
	for _, x := range xs {
		s[x] = struct{}{}
	}
	return s
}

// Drop describes an entry removed during normalization or expansion.
type Drop struct {
	Branch string
	Key    any
	Reason string
}

// Report receives drops. A nil Report discards them.
type Report func(Drop)

func (r Report) drop(branch string, key any, reason string) {
	if r != nil {
		r(Drop{Branch: branch, Key: key, Reason: reason})
	}
}

// Currencies returns the normalized currencies branch.
func (c Config) Currencies() map[ident.ID]any { return currenciesOf(c[BranchCurrencies], nil) }

// Countries returns the normalized countries branch.
func (c Config) Countries() map[ident.ID]ident.ID { return countriesOf(c[BranchCountries], nil) }

// LocalizedData returns the normalized localized branch.
func (c Config) LocalizedData() map[ident.ID]Localized { return localizedOf(c[BranchLocalized], nil) }

// Traits returns the normalized traits branch.
func (c Config) Traits() map[ident.ID][]ident.ID { return traitsOf(c[BranchTraits], nil) }

// Weights returns the normalized weights branch.
func (c Config) Weights() map[ident.ID]int { return weightsOf(c[BranchWeights], nil) }

// Version returns the data version string, if any.
func (c Config) Version() string {
	if s, ok := c[BranchVersion].(string); ok {
		return s
	}
	return ""
}

// PropagateKeys returns the attribute keys copied onto built currencies.
func (c Config) PropagateKeys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, k := range Linearize(c[BranchPropagateKeys]) {
		name, ok := KeyName(k)
		if ok && !seen[name] {
			seen[name] = true
			keys = append(keys, name)
		}
	}
	return keys
}

// Hierarchy names recognized under the hierarchies branch.
const (
	HierarchyDomain = "domain"
	HierarchyKind   = "kind"
	HierarchyTraits = "traits"
)

// HierarchyData returns the hierarchies branch as hierarchy name -> child
// -> parents. Parents may be given as a scalar or a sequence.
func (c Config) HierarchyData() map[string]map[ident.ID][]ident.ID {
	out := make(map[string]map[ident.ID][]ident.ID)
	for _, name := range []string{HierarchyDomain, HierarchyKind, HierarchyTraits} {
		v, ok := Lookup(c[BranchHierarchies], name)
		if !ok {
			continue
		}
		es, ok := entries(v)
		if !ok {
			continue
		}
		tree := make(map[ident.ID][]ident.ID, len(es))
		for _, e := range es {
			child, ok := ident.Normalize(e.key)
			if !ok {
				continue
			}
			if parents := IDs(e.val); len(parents) > 0 {
				tree[child] = parents
			}
		}
		out[name] = tree
	}
	return out
}

// Ext returns the open ext branch with canonical string keys.
func (c Config) Ext() map[string]any {
	es, ok := entries(c[BranchExt])
	if !ok {
		return nil
	}
	out := make(map[string]any, len(es))
	for _, e := range es {
		if k, ok := KeyName(e.key); ok {
			out[k] = e.val
		}
	}
	return out
}
