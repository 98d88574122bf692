package registry

import (
	"slices"
	"sort"
	"strings"

	"github.com/moneta-labs/moneta/internal/attr"
	"github.com/moneta-labs/moneta/internal/ident"
	"golang.org/x/text/language"
)

// Registry is an immutable multi-index snapshot of currency reference data.
//
// The primary indices (currencies, countries, localized, traits, weights,
// hierarchies, version, ext) are what Build reads and Merge combines. The
// derived indices (canonical lookups, collision groups, country sets per
// currency) are always recomputed from them by reindex, so every currency
// sits in exactly the groups matching its own code, numeric code and domain.
type Registry struct {
	currencies  map[ident.ID]Currency
	countries   map[ident.ID]ident.ID // country -> currency
	localized   map[ident.ID]Localized
	traits      map[ident.ID][]ident.ID
	weights     map[ident.ID]int
	hierarchies Hierarchies
	version     string
	ext         attr.Values

	ordering      Ordering // nil means ByWeight
	defaultWeight int

	byNumeric     map[int]Currency
	byCountry     map[ident.ID]Currency
	countriesOf   map[ident.ID][]ident.ID
	codeGroups    map[string][]Currency
	numericGroups map[int][]Currency
	domainGroups  map[Domain][]Currency
}

// Empty returns a registry with no data.
func Empty() *Registry {
	r := newRegistry()
	r.reindex()
	return r
}

func newRegistry() *Registry {
	return &Registry{
		currencies:    make(map[ident.ID]Currency),
		countries:     make(map[ident.ID]ident.ID),
		localized:     make(map[ident.ID]Localized),
		traits:        make(map[ident.ID][]ident.ID),
		weights:       make(map[ident.ID]int),
		hierarchies:   emptyHierarchies(),
		ext:           make(attr.Values),
		defaultWeight: DefaultWeight,
	}
}

// prune drops per-currency entries whose currency is not registered.
func (r *Registry) prune() {
	for country, cid := range r.countries {
		if _, ok := r.currencies[cid]; !ok {
			delete(r.countries, country)
		}
	}
	for id := range r.localized {
		if _, ok := r.currencies[id]; !ok {
			delete(r.localized, id)
		}
	}
	for id := range r.traits {
		if _, ok := r.currencies[id]; !ok {
			delete(r.traits, id)
		}
	}
	for id := range r.weights {
		if _, ok := r.currencies[id]; !ok {
			delete(r.weights, id)
		}
	}
}

// reindex rebuilds every derived index from the primary ones.
func (r *Registry) reindex() {
	r.byNumeric = make(map[int]Currency)
	r.byCountry = make(map[ident.ID]Currency, len(r.countries))
	r.countriesOf = make(map[ident.ID][]ident.ID)
	r.codeGroups = make(map[string][]Currency)
	r.numericGroups = make(map[int][]Currency)
	r.domainGroups = make(map[Domain][]Currency)

	for _, c := range r.currencies {
		r.codeGroups[c.Code] = append(r.codeGroups[c.Code], c)
		if c.HasNumeric() {
			r.numericGroups[c.Numeric] = append(r.numericGroups[c.Numeric], c)
		}
		r.domainGroups[c.Domain] = append(r.domainGroups[c.Domain], c)
	}
	for _, g := range r.codeGroups {
		r.sortGroup(g)
	}
	for n, g := range r.numericGroups {
		r.sortGroup(g)
		r.byNumeric[n] = g[0]
	}
	for _, g := range r.domainGroups {
		r.sortGroup(g)
	}

	for country, cid := range r.countries {
		c, ok := r.currencies[cid]
		if !ok {
			continue
		}
		r.byCountry[country] = c
		r.countriesOf[cid] = append(r.countriesOf[cid], country)
	}
	for _, cs := range r.countriesOf {
		ident.Sort(cs)
	}
}

func (r *Registry) sortGroup(g []Currency) {
	order := r.ordering
	if order == nil {
		order = ByWeight
	}
	sort.SliceStable(g, func(i, j int) bool {
		return order(r.weighted(g[i]), r.weighted(g[j])) < 0
	})
}

func (r *Registry) weighted(c Currency) Weighted {
	return Weighted{Currency: c, Weight: r.Weight(c.ID)}
}

// Len returns the number of currencies.
func (r *Registry) Len() int { return len(r.currencies) }

// Version returns the data version the registry was built from.
func (r *Registry) Version() string { return r.version }

// Ext returns a copy of the open extension bucket.
func (r *Registry) Ext() attr.Values { return r.ext.Clone() }

// Hierarchies returns the classification trees.
func (r *Registry) Hierarchies() Hierarchies { return r.hierarchies }

// Currency returns the currency registered under id.
func (r *Registry) Currency(id ident.ID) (Currency, bool) {
	c, ok := r.currencies[id]
	return c, ok
}

// IDs returns all currency identifiers in ascending order.
func (r *Registry) IDs() []ident.ID {
	ids := make([]ident.ID, 0, len(r.currencies))
	for id := range r.currencies {
		ids = append(ids, id)
	}
	ident.Sort(ids)
	return ids
}

// Currencies returns all currencies ordered by identifier.
func (r *Registry) Currencies() []Currency {
	ids := r.IDs()
	out := make([]Currency, len(ids))
	for i, id := range ids {
		out[i] = r.currencies[id]
	}
	return out
}

// ByCode returns the canonical currency for a code.
func (r *Registry) ByCode(code string) (Currency, bool) {
	g := r.codeGroups[code]
	if len(g) == 0 {
		return Currency{}, false
	}
	return g[0], true
}

// CodeGroup returns every currency sharing code, canonical first.
func (r *Registry) CodeGroup(code string) []Currency { return slices.Clone(r.codeGroups[code]) }

// ByNumeric returns the canonical currency for a numeric code.
func (r *Registry) ByNumeric(n int) (Currency, bool) {
	c, ok := r.byNumeric[n]
	return c, ok
}

// NumericGroup returns every currency sharing numeric code n, canonical first.
func (r *Registry) NumericGroup(n int) []Currency { return slices.Clone(r.numericGroups[n]) }

// DomainGroup returns every currency in domain d, canonical first.
func (r *Registry) DomainGroup(d Domain) []Currency { return slices.Clone(r.domainGroups[d]) }

// Domains returns the domains present in the registry, sorted.
func (r *Registry) Domains() []Domain {
	out := make([]Domain, 0, len(r.domainGroups))
	for d := range r.domainGroups {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// Lookup resolves a raw key: first as an identifier, then as a code.
func (r *Registry) Lookup(x any) (Currency, bool) {
	id, ok := ident.Normalize(x)
	if !ok {
		return Currency{}, false
	}
	if c, ok := r.currencies[id]; ok {
		return c, true
	}
	if id.Namespace == "" {
		return r.ByCode(id.Name)
	}
	return Currency{}, false
}

// ByCountry returns the currency used in country.
func (r *Registry) ByCountry(country ident.ID) (Currency, bool) {
	c, ok := r.byCountry[country]
	return c, ok
}

// Countries returns the countries using currency id, sorted.
func (r *Registry) Countries(id ident.ID) []ident.ID { return slices.Clone(r.countriesOf[id]) }

// Weight returns the weight of id, or the default weight when unset.
func (r *Registry) Weight(id ident.ID) int {
	if w, ok := r.weights[id]; ok {
		return w
	}
	return r.defaultWeight
}

// Traits returns the traits of id in configured order.
func (r *Registry) Traits(id ident.ID) []ident.ID { return slices.Clone(r.traits[id]) }

// HasTrait reports whether id carries trait directly or through the trait
// hierarchy.
func (r *Registry) HasTrait(id, trait ident.ID) bool {
	for _, t := range r.traits[id] {
		if r.hierarchies.Traits.IsA(t, trait) {
			return true
		}
	}
	return false
}

// IsISOLike reports whether c belongs to ISO 4217 or to a domain placed
// under it in the domain hierarchy.
func (r *Registry) IsISOLike(c Currency) bool {
	if c.Domain.ISOLike() {
		return true
	}
	return r.hierarchies.Domain.IsA(domainID(c.Domain), domainID(ISO4217))
}

// OfKind reports whether c is of kind, directly or through the kind hierarchy.
func (r *Registry) OfKind(c Currency, kind ident.ID) bool {
	return !c.Kind.IsZero() && r.hierarchies.Kind.IsA(c.Kind, kind)
}

func domainID(d Domain) ident.ID { return ident.ID{Name: string(d)} }

// Localized returns a copy of the localized properties of id.
func (r *Registry) Localized(id ident.ID) Localized { return r.localized[id].clone() }

// Property returns a localized property, falling back from a regional
// locale to its base language and then to the default locale "*".
func (r *Registry) Property(id ident.ID, locale, key string) (attr.Value, bool) {
	loc := r.localized[id]
	if loc == nil {
		return attr.Value{}, false
	}
	for _, candidate := range localeChain(locale) {
		if v, ok := loc[candidate][key]; ok {
			return v, true
		}
	}
	return attr.Value{}, false
}

func localeChain(locale string) []string {
	chain := []string{locale}
	if tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err == nil {
		chain[0] = tag.String()
		if base, conf := tag.Base(); conf != language.No && base.String() != chain[0] {
			chain = append(chain, base.String())
		}
	}
	return append(chain, "*")
}
