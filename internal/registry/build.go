package registry

import (
	"slices"
	"strings"

	"github.com/moneta-labs/moneta/internal/attr"
	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/ident"
)

// Currency attribute keys read by the builder.
const (
	AttrCode    = "code"
	AttrNumeric = "numeric"
	AttrScale   = "scale"
	AttrDomain  = "domain"
	AttrKind    = "kind"
)

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	ordering      Ordering
	defaultWeight int
	report        dataset.Report
}

// WithOrdering replaces the canonical-currency ordering (ByWeight).
func WithOrdering(o Ordering) Option {
	return func(b *buildOptions) { b.ordering = o }
}

// WithDefaultWeight sets the weight of currencies with no configured weight.
func WithDefaultWeight(w int) Option {
	return func(b *buildOptions) { b.defaultWeight = w }
}

// WithReport receives entries dropped while preparing and building.
func WithReport(r dataset.Report) Option {
	return func(b *buildOptions) { b.report = r }
}

// Build turns a currency data config into a Registry. The config is
// normalized and expanded first; both steps are idempotent, so passing an
// already prepared config is fine.
func Build(cfg dataset.Config, opts ...Option) *Registry {
	o := buildOptions{defaultWeight: DefaultWeight}
	for _, opt := range opts {
		opt(&o)
	}
	cfg = dataset.Prepare(cfg, o.report)

	r := newRegistry()
	r.ordering = o.ordering
	r.defaultWeight = o.defaultWeight

	keys := cfg.PropagateKeys()
	for id, attrs := range cfg.Currencies() {
		r.currencies[id] = buildCurrency(id, attrs, keys)
	}

	drop := func(branch string, key any) {
		if o.report != nil {
			o.report(dataset.Drop{Branch: branch, Key: key, Reason: "unknown currency"})
		}
	}
	for country, cid := range cfg.Countries() {
		if _, ok := r.currencies[cid]; !ok {
			drop(dataset.BranchCountries, country)
			continue
		}
		r.countries[country] = cid
	}
	for id, loc := range cfg.LocalizedData() {
		if _, ok := r.currencies[id]; !ok {
			drop(dataset.BranchLocalized, id)
			continue
		}
		r.localized[id] = localizedValues(loc)
	}
	for id, traits := range cfg.Traits() {
		if _, ok := r.currencies[id]; !ok {
			drop(dataset.BranchTraits, id)
			continue
		}
		if len(traits) > 0 {
			r.traits[id] = append([]ident.ID(nil), traits...)
		}
	}
	for id, w := range cfg.Weights() {
		if _, ok := r.currencies[id]; !ok {
			drop(dataset.BranchWeights, id)
			continue
		}
		r.weights[id] = w
	}

	trees := cfg.HierarchyData()
	r.hierarchies = Hierarchies{
		Domain: NewHierarchy(domainTree(trees[dataset.HierarchyDomain])),
		Kind:   NewHierarchy(trees[dataset.HierarchyKind]),
		Traits: NewHierarchy(trees[dataset.HierarchyTraits]),
	}
	r.version = cfg.Version()
	if ext := cfg.Ext(); len(ext) > 0 {
		r.ext = attr.FromMap(ext)
	}

	r.reindex()
	return r
}

func buildCurrency(id ident.ID, attrs any, propagate []string) Currency {
	c := Currency{
		ID:      id,
		Code:    id.Name,
		Numeric: NoNumeric,
		Scale:   AutoScale,
		Domain:  domainOf(id, attrs),
	}
	if v, ok := dataset.Lookup(attrs, AttrCode); ok {
		if code, ok := ident.Normalize(v); ok {
			c.Code = code.String()
		}
	}
	if v, ok := dataset.Lookup(attrs, AttrNumeric); ok {
		if n, ok := dataset.CoerceInt(v); ok && n > 0 {
			c.Numeric = n
		}
	}
	if v, ok := dataset.Lookup(attrs, AttrScale); ok {
		if n, ok := dataset.CoerceInt(v); ok && n >= 0 {
			c.Scale = n
		}
	}
	if v, ok := dataset.Lookup(attrs, AttrKind); ok {
		if kind, ok := ident.Normalize(v); ok {
			c.Kind = kind
		}
	}
	for _, key := range propagate {
		v, ok := dataset.Lookup(attrs, key)
		if !ok {
			continue
		}
		if c.Extensions == nil {
			c.Extensions = make(attr.Values, len(propagate))
		}
		c.Extensions[key] = attr.From(v)
	}
	return c
}

func domainOf(id ident.ID, attrs any) Domain {
	if v, ok := dataset.Lookup(attrs, AttrDomain); ok {
		if d, ok := ident.Normalize(v); ok {
			return domainName(d)
		}
	}
	if id.Namespace != "" {
		return Domain(strings.ToUpper(id.Namespace))
	}
	return ISO4217
}

func domainName(id ident.ID) Domain { return Domain(strings.ToUpper(id.String())) }

// domainTree rewrites domain hierarchy entries into the form currency
// domains take, so "crypto" and "FOO/BAR" match Domain("CRYPTO") and
// Domain("FOO/BAR").
func domainTree(tree map[ident.ID][]ident.ID) map[ident.ID][]ident.ID {
	out := make(map[ident.ID][]ident.ID, len(tree))
	for child, parents := range tree {
		key := domainID(domainName(child))
		for _, p := range parents {
			pid := domainID(domainName(p))
			if !slices.Contains(out[key], pid) {
				out[key] = append(out[key], pid)
			}
		}
	}
	return out
}

func localizedValues(loc dataset.Localized) Localized {
	out := make(Localized, len(loc))
	for locale, props := range loc {
		out[locale] = attr.FromMap(props)
	}
	return out
}
