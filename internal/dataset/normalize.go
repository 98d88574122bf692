package dataset

import (
	"github.com/moneta-labs/moneta/internal/ident"
)

// branchAliases maps accepted spellings of recognized top-level keys to
// their canonical names.
var branchAliases = map[string]string{
	BranchVersion:     BranchVersion,
	BranchCurrencies:  BranchCurrencies,
	BranchCountries:   BranchCountries,
	BranchLocalized:   BranchLocalized,
	BranchTraits:      BranchTraits,
	BranchWeights:     BranchWeights,
	BranchHierarchies: BranchHierarchies,
	BranchExt:         BranchExt,

	BranchPropagateKeys: BranchPropagateKeys,
	"propagate-keys":    BranchPropagateKeys,
	"propagate_keys":    BranchPropagateKeys,
}

// Normalize rewrites the identifier-keyed branches of cfg (currencies,
// countries, localized, traits, weights) through ident.Normalize and
// returns a new Config. Entries whose key does not normalize are dropped
// and passed to report. Other branches are carried over unchanged. cfg is
// never modified.
func Normalize(cfg Config, report Report) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	canonical := make(map[string]bool)

	es, _ := entries(cfg)
	for _, e := range es {
		raw := e.key.(string)
		name, known := canonicalBranch(raw)
		if !known {
			out[raw] = e.val
			continue
		}
		// An exact spelling beats an alias of the same branch.
		if canonical[name] {
			continue
		}
		if raw == name {
			canonical[name] = true
		}
		out[name] = e.val
	}

	if v, ok := out[BranchCurrencies]; ok {
		out[BranchCurrencies] = currenciesOf(v, report)
	}
	if v, ok := out[BranchCountries]; ok {
		out[BranchCountries] = countriesOf(v, report)
	}
	if v, ok := out[BranchLocalized]; ok {
		out[BranchLocalized] = localizedOf(v, report)
	}
	if v, ok := out[BranchTraits]; ok {
		out[BranchTraits] = traitsOf(v, report)
	}
	if v, ok := out[BranchWeights]; ok {
		out[BranchWeights] = weightsOf(v, report)
	}
	return out
}

func canonicalBranch(key string) (string, bool) {
	id, ok := ident.Normalize(key)
	if !ok || id.Namespace != "" {
		return "", false
	}
	name, known := branchAliases[id.Name]
	return name, known
}

func currenciesOf(v any, report Report) map[ident.ID]any {
	if m, ok := v.(map[ident.ID]any); ok {
		return m
	}
	out := make(map[ident.ID]any)
	es, _ := entries(v)
	for _, e := range es {
		id, ok := ident.Normalize(e.key)
		if !ok {
			report.drop(BranchCurrencies, e.key, "blank currency id")
			continue
		}
		out[id] = e.val
	}
	return out
}

func countriesOf(v any, report Report) map[ident.ID]ident.ID {
	if m, ok := v.(map[ident.ID]ident.ID); ok {
		return m
	}
	out := make(map[ident.ID]ident.ID)
	es, _ := entries(v)
	for _, e := range es {
		country, ok := ident.Normalize(e.key)
		if !ok {
			report.drop(BranchCountries, e.key, "blank country id")
			continue
		}
		currency, ok := ident.Normalize(e.val)
		if !ok {
			report.drop(BranchCountries, e.key, "blank currency id")
			continue
		}
		out[country] = currency
	}
	return out
}

func localizedOf(v any, report Report) map[ident.ID]Localized {
	if m, ok := v.(map[ident.ID]Localized); ok {
		return m
	}
	out := make(map[ident.ID]Localized)
	es, _ := entries(v)
	for _, e := range es {
		id, ok := ident.Normalize(e.key)
		if !ok {
			report.drop(BranchLocalized, e.key, "blank currency id")
			continue
		}
		loc, ok := toLocalized(e.val)
		if !ok {
			report.drop(BranchLocalized, e.key, "localized data is not a map")
			continue
		}
		out[id] = loc
	}
	return out
}

// toLocalized converts a decoded locale -> properties map. Locales whose
// properties are not a map are skipped.
func toLocalized(v any) (Localized, bool) {
	if l, ok := v.(Localized); ok {
		return l, true
	}
	es, ok := entries(v)
	if !ok {
		return nil, false
	}
	out := make(Localized, len(es))
	for _, e := range es {
		locale, ok := CanonicalLocale(e.key)
		if !ok {
			continue
		}
		props, ok := toProperties(e.val)
		if !ok {
			continue
		}
		if prev, dup := out[locale]; dup {
			props = mergeProperties(prev, props)
		}
		out[locale] = props
	}
	return out, true
}

func toProperties(v any) (Properties, bool) {
	if p, ok := v.(Properties); ok {
		return p, true
	}
	es, ok := entries(v)
	if !ok {
		return nil, false
	}
	out := make(Properties, len(es))
	for _, e := range es {
		if name, ok := KeyName(e.key); ok {
			out[name] = e.val
		}
	}
	return out, true
}

func traitsOf(v any, report Report) map[ident.ID][]ident.ID {
	if m, ok := v.(map[ident.ID][]ident.ID); ok {
		return m
	}
	out := make(map[ident.ID][]ident.ID)
	es, _ := entries(v)
	for _, e := range es {
		id, ok := ident.Normalize(e.key)
		if !ok {
			report.drop(BranchTraits, e.key, "blank currency id")
			continue
		}
		out[id] = unionIDs(nil, IDs(e.val))
	}
	return out
}

func weightsOf(v any, report Report) map[ident.ID]int {
	if m, ok := v.(map[ident.ID]int); ok {
		return m
	}
	out := make(map[ident.ID]int)
	es, _ := entries(v)
	for _, e := range es {
		id, ok := ident.Normalize(e.key)
		if !ok {
			report.drop(BranchWeights, e.key, "blank currency id")
			continue
		}
		w, ok := CoerceInt(e.val)
		if !ok {
			report.drop(BranchWeights, e.key, "weight is not an integer")
			continue
		}
		out[id] = w
	}
	return out
}

// IDs linearizes v and normalizes each element, skipping blanks.
func IDs(v any) []ident.ID {
	var out []ident.ID
	for _, x := range Linearize(v) {
		if id, ok := ident.Normalize(x); ok {
			out = append(out, id)
		}
	}
	return out
}

// unionIDs returns existing followed by the elements of add not already
// present, without duplicates and without touching either input.
func unionIDs(existing, add []ident.ID) []ident.ID {
	out := make([]ident.ID, 0, len(existing)+len(add))
	seen := make(map[ident.ID]bool, len(existing)+len(add))
	for _, list := range [][]ident.ID{existing, add} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

func mergeProperties(base, over Properties) Properties {
	out := make(Properties, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// mergeLocalized deep-merges over into base per locale; properties from
// over win on conflict.
func mergeLocalized(base, over Localized) Localized {
	out := make(Localized, len(base)+len(over))
	for locale, props := range base {
		out[locale] = props
	}
	for locale, props := range over {
		if prev, ok := out[locale]; ok {
			out[locale] = mergeProperties(prev, props)
			continue
		}
		out[locale] = props
	}
	return out
}
