package registry

import (
	"strings"

	"github.com/moneta-labs/moneta/internal/attr"
	"github.com/moneta-labs/moneta/internal/ident"
)

// Sentinels for numeric fields.
const (
	NoNumeric = -1 // currency has no numeric code
	AutoScale = -1 // scale is variable or determined by the amount
)

// Domain classifies the namespace a currency belongs to.
type Domain string

// ISO4217 is the domain of currencies defined by the ISO 4217 standard.
const ISO4217 Domain = "ISO-4217"

// ISOLike reports whether d is ISO 4217 or one of its variants
// ("ISO-4217-LEGACY").
func (d Domain) ISOLike() bool {
	return d == ISO4217 || strings.HasPrefix(string(d), string(ISO4217)+"-")
}

// Currency is an immutable currency definition.
type Currency struct {
	ID         ident.ID
	Code       string
	Numeric    int
	Scale      int
	Domain     Domain
	Kind       ident.ID
	Extensions attr.Values
}

// HasNumeric reports whether c carries a real numeric code.
func (c Currency) HasNumeric() bool { return c.Numeric > 0 }

// HasFixedScale reports whether c has a fixed number of decimal places.
func (c Currency) HasFixedScale() bool { return c.Scale >= 0 }

// Equal reports whether c and o describe the same currency.
func (c Currency) Equal(o Currency) bool {
	return c.ID == o.ID &&
		c.Code == o.Code &&
		c.Numeric == o.Numeric &&
		c.Scale == o.Scale &&
		c.Domain == o.Domain &&
		c.Kind == o.Kind &&
		c.Extensions.Equal(o.Extensions)
}

func (c Currency) String() string { return c.ID.String() }

// Localized maps a canonical locale tag to its property values.
type Localized map[string]attr.Values

func (l Localized) clone() Localized {
	if l == nil {
		return nil
	}
	out := make(Localized, len(l))
	for locale, props := range l {
		out[locale] = props.Clone()
	}
	return out
}

// merge lays over on top of l, locale by locale; properties of over win.
func (l Localized) merge(over Localized) Localized {
	out := l.clone()
	if out == nil {
		out = make(Localized, len(over))
	}
	for locale, props := range over {
		if prev, ok := out[locale]; ok {
			out[locale] = prev.Merge(props)
			continue
		}
		out[locale] = props.Clone()
	}
	return out
}
