package registry

import (
	"fmt"
	"maps"
	"strings"

	"github.com/moneta-labs/moneta/internal/ident"
	"github.com/rs/zerolog"
)

// Field names a primary index of a Registry.
type Field string

const (
	FieldCurrencies  Field = "currencies"
	FieldCountries   Field = "countries"
	FieldLocalized   Field = "localized"
	FieldTraits      Field = "traits"
	FieldWeights     Field = "weights"
	FieldHierarchies Field = "hierarchies"
	FieldVersion     Field = "version"
	FieldExt         Field = "ext"
)

// Fields lists every mergeable field.
func Fields() []Field {
	return []Field{
		FieldCurrencies, FieldCountries, FieldLocalized, FieldTraits,
		FieldWeights, FieldHierarchies, FieldVersion, FieldExt,
	}
}

// ParseField parses a field name, ignoring case and surrounding spaces.
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown registry field %q", s)
}

// ParseFields parses a list of field names.
func ParseFields(names []string) ([]Field, error) {
	var out []Field
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// MergeOptions controls Merge.
type MergeOptions struct {
	// PreserveFields are taken from base regardless of the overlay.
	PreserveFields []Field
	// ISOLike limits the overlay to ISO-like currencies: non ISO-like
	// entries of either side are left as base has them.
	ISOLike bool
	// Verbose logs skipped overlay entries to Logger.
	Verbose bool
	Logger  zerolog.Logger
}

func (o MergeOptions) preserves(f Field) bool {
	for _, p := range o.PreserveFields {
		if p == f {
			return true
		}
	}
	return false
}

// Merge lays overlay over base and returns a new Registry. Neither input is
// modified. A nil or empty overlay yields base.
func Merge(base, overlay *Registry, opts MergeOptions) *Registry {
	if base == nil {
		base = Empty()
	}
	if overlay == nil || overlay.isEmpty() {
		return base
	}
	log := zerolog.Nop()
	if opts.Verbose {
		log = opts.Logger.With().Str("component", "merge").Logger()
	}

	out := base.clone()
	if !opts.preserves(FieldHierarchies) {
		out.hierarchies = base.hierarchies.merge(overlay.hierarchies)
	}

	applies := func(id ident.ID) bool {
		if !opts.ISOLike {
			return true
		}
		if bc, ok := base.currencies[id]; ok && !base.IsISOLike(bc) {
			return false
		}
		if oc, ok := overlay.currencies[id]; ok {
			return overlay.IsISOLike(oc)
		}
		_, ok := base.currencies[id]
		return ok
	}
	skip := func(f Field, key ident.ID) {
		log.Debug().Str("field", string(f)).Stringer("key", key).Msg("overlay entry outside ISO-like scope, keeping base")
	}

	if !opts.preserves(FieldCurrencies) {
		for id, c := range overlay.currencies {
			if !applies(id) {
				skip(FieldCurrencies, id)
				continue
			}
			out.currencies[id] = c
		}
	}
	if !opts.preserves(FieldWeights) {
		for id, w := range overlay.weights {
			if !applies(id) {
				skip(FieldWeights, id)
				continue
			}
			out.weights[id] = w
		}
	}
	if !opts.preserves(FieldLocalized) {
		for id, loc := range overlay.localized {
			if !applies(id) {
				skip(FieldLocalized, id)
				continue
			}
			out.localized[id] = out.localized[id].merge(loc)
		}
	}
	if !opts.preserves(FieldTraits) {
		for id, traits := range overlay.traits {
			if !applies(id) {
				skip(FieldTraits, id)
				continue
			}
			out.traits[id] = unionTraits(out.traits[id], traits)
		}
	}
	if !opts.preserves(FieldCountries) {
		for country, cid := range overlay.countries {
			if _, ok := out.currencies[cid]; !ok {
				continue
			}
			if opts.ISOLike && !countryApplies(base, out, country, cid) {
				skip(FieldCountries, country)
				continue
			}
			out.countries[country] = cid
		}
	}
	if !opts.preserves(FieldVersion) && overlay.version != "" {
		if base.version != "" {
			if cmp, err := CompareVersions(overlay.version, base.version); err == nil && cmp < 0 {
				log.Warn().Str("base", base.version).Str("overlay", overlay.version).Msg("overlay data is older than base")
			}
		}
		out.version = overlay.version
	}
	if !opts.preserves(FieldExt) && len(overlay.ext) > 0 {
		out.ext = base.ext.Merge(overlay.ext)
	}

	out.pruneExcept(opts)
	out.reindex()
	log.Debug().
		Int("base", base.Len()).
		Int("overlay", overlay.Len()).
		Int("merged", out.Len()).
		Bool("iso_like", opts.ISOLike).
		Msg("merged registries")
	return out
}

// countryApplies reports whether an overlay country mapping may replace the
// base one under ISO-like scoping: the new currency must be ISO-like, and so
// must the currency it replaces.
func countryApplies(base, merged *Registry, country, cid ident.ID) bool {
	c, ok := merged.currencies[cid]
	if !ok || !merged.IsISOLike(c) {
		return false
	}
	if prev, ok := base.countries[country]; ok {
		if bc, ok := base.currencies[prev]; ok && !base.IsISOLike(bc) {
			return false
		}
	}
	return true
}

func unionTraits(existing, add []ident.ID) []ident.ID {
	out := append([]ident.ID(nil), existing...)
	seen := make(map[ident.ID]bool, len(existing)+len(add))
	for _, t := range existing {
		seen[t] = true
	}
	for _, t := range add {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// pruneExcept drops dangling per-currency entries from every field the
// merge did not preserve.
func (r *Registry) pruneExcept(opts MergeOptions) {
	keep := map[Field]bool{}
	for _, f := range opts.PreserveFields {
		keep[f] = true
	}
	full := r.clone()
	full.prune()
	if !keep[FieldCountries] {
		r.countries = full.countries
	}
	if !keep[FieldLocalized] {
		r.localized = full.localized
	}
	if !keep[FieldTraits] {
		r.traits = full.traits
	}
	if !keep[FieldWeights] {
		r.weights = full.weights
	}
}

func (r *Registry) isEmpty() bool {
	return len(r.currencies) == 0 &&
		len(r.countries) == 0 &&
		len(r.localized) == 0 &&
		len(r.traits) == 0 &&
		len(r.weights) == 0 &&
		r.hierarchies.Domain.Len() == 0 &&
		r.hierarchies.Kind.Len() == 0 &&
		r.hierarchies.Traits.Len() == 0 &&
		r.version == "" &&
		len(r.ext) == 0
}

// clone copies the primary indices; derived ones are left for reindex.
func (r *Registry) clone() *Registry {
	out := newRegistry()
	maps.Copy(out.currencies, r.currencies)
	maps.Copy(out.countries, r.countries)
	for id, loc := range r.localized {
		out.localized[id] = loc.clone()
	}
	for id, traits := range r.traits {
		out.traits[id] = append([]ident.ID(nil), traits...)
	}
	maps.Copy(out.weights, r.weights)
	out.hierarchies = r.hierarchies
	out.version = r.version
	if len(r.ext) > 0 {
		out.ext = r.ext.Clone()
	}
	out.ordering = r.ordering
	out.defaultWeight = r.defaultWeight
	return out
}
