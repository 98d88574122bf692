package dataset

import (
	"github.com/moneta-labs/moneta/internal/ident"
)

// Expand projects inline currency attributes (countries, localized, traits,
// weight) into the top-level branches and returns a new Config. It expects
// normalized input and is idempotent.
//
// Currencies are visited in ascending ident.Compare order, so when two
// currencies claim the same country the one sorting last keeps it.
// Inline keys stay on the currency entries; malformed inline values are
// treated as absent.
func Expand(cfg Config, report Report) Config {
	if cfg == nil {
		return nil
	}
	currencies := currenciesOf(cfg[BranchCurrencies], report)

	countries := make(map[ident.ID]ident.ID)
	for k, v := range countriesOf(cfg[BranchCountries], report) {
		countries[k] = v
	}
	localized := make(map[ident.ID]Localized)
	for k, v := range localizedOf(cfg[BranchLocalized], report) {
		localized[k] = v
	}
	traits := make(map[ident.ID][]ident.ID)
	for k, v := range traitsOf(cfg[BranchTraits], report) {
		traits[k] = v
	}
	weights := make(map[ident.ID]int)
	for k, v := range weightsOf(cfg[BranchWeights], report) {
		weights[k] = v
	}

	ids := make([]ident.ID, 0, len(currencies))
	for id := range currencies {
		ids = append(ids, id)
	}
	ident.Sort(ids)

	for _, id := range ids {
		attrs := currencies[id]

		if v, ok := Lookup(attrs, KeyCountries); ok {
			for _, country := range IDs(v) {
				countries[country] = id
			}
		}

		if v, ok := Lookup(attrs, KeyLocalized); ok {
			if loc, ok := toLocalized(v); ok {
				localized[id] = mergeLocalized(localized[id], loc)
			} else {
				report.drop(KeyLocalized, id, "inline localized data is not a map")
			}
		}

		if v, ok := Lookup(attrs, KeyTraits); ok {
			traits[id] = unionIDs(traits[id], IDs(v))
		}

		w, ok := Lookup(attrs, KeyWeight)
		if !ok {
			w, ok = Lookup(attrs, KeyLegacyWeight)
		}
		if ok && w != nil {
			if n, ok := CoerceInt(w); ok {
				weights[id] = n
			} else {
				report.drop(KeyWeight, id, "inline weight is not an integer")
			}
		}
	}

	out := make(Config, len(cfg)+4)
	for k, v := range cfg {
		out[k] = v
	}
	setBranch(out, BranchCurrencies, currencies, len(currencies))
	setBranch(out, BranchCountries, countries, len(countries))
	setBranch(out, BranchLocalized, localized, len(localized))
	setBranch(out, BranchTraits, traits, len(traits))
	setBranch(out, BranchWeights, weights, len(weights))
	return out
}

// setBranch stores v unless it is empty and the branch was absent, so that
// expanding a config without inline data adds no empty branches.
func setBranch(cfg Config, name string, v any, n int) {
	if _, present := cfg[name]; present || n > 0 {
		cfg[name] = v
	}
}

// Prepare normalizes and expands cfg.
func Prepare(cfg Config, report Report) Config {
	return Expand(Normalize(cfg, report), report)
}
