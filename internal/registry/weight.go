package registry

import "github.com/moneta-labs/moneta/internal/ident"

// DefaultWeight is the weight of a currency with no configured weight.
const DefaultWeight = 0

// Weighted pairs a currency with its effective weight.
type Weighted struct {
	Currency Currency
	Weight   int
}

// Ordering ranks currencies inside a collision group; the first element
// after sorting is the canonical one. It must be a total order.
type Ordering func(a, b Weighted) int

// ByWeight is the default Ordering: higher weight first, ties broken by
// ascending identifier.
func ByWeight(a, b Weighted) int {
	switch {
	case a.Weight > b.Weight:
		return -1
	case a.Weight < b.Weight:
		return 1
	}
	return ident.Compare(a.Currency.ID, b.Currency.ID)
}
