package registry

import (
	"testing"

	"github.com/moneta-labs/moneta/internal/attr"
	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(s string) ident.ID { return ident.MustParse(s) }

func mustIDs(ss ...string) []ident.ID {
	out := make([]ident.ID, len(ss))
	for i, s := range ss {
		out[i] = mustID(s)
	}
	return out
}

func buildYAML(t *testing.T, src string, opts ...Option) *Registry {
	t.Helper()
	cfg, err := dataset.Parse([]byte(src))
	require.NoError(t, err)
	return Build(cfg, opts...)
}

func ids(cs []Currency) []ident.ID {
	out := make([]ident.ID, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

const sample = `
version: "1.0.0"
propagateKeys: [iso-name]
currencies:
  PLN:
    numeric: 985
    scale: 2
    iso-name: Polish zloty
    countries: PL
    weight: 5
    traits: [fiat]
    localized:
      pl: { name: złoty }
      "*": { symbol: zł }
  EUR:
    numeric: "978"
    scale: 2
    countries: [DE, FR]
  old/EUR:
    numeric: 978
    scale: 2
    code: EUR
    domain: ISO-4217-LEGACY
  crypto/ETH:
    scale: 18
    kind: token
    traits: [crypto]
  XXX:
    numeric: -1
    scale: -7
weights:
  EUR: 10
countries:
  ZZ: NOPE
hierarchies:
  kind:
    token: digital
  traits:
    fiat: money
ext:
  source: test
`

func TestBuild_Currencies(t *testing.T) {
	r := buildYAML(t, sample)

	pln, ok := r.Currency(mustID("PLN"))
	require.True(t, ok)
	assert.Equal(t, Currency{
		ID:         mustID("PLN"),
		Code:       "PLN",
		Numeric:    985,
		Scale:      2,
		Domain:     ISO4217,
		Extensions: attr.Values{"iso-name": attr.OfString("Polish zloty")},
	}, pln)

	eth, ok := r.Currency(mustID("crypto/ETH"))
	require.True(t, ok)
	assert.Equal(t, Domain("CRYPTO"), eth.Domain)
	assert.Equal(t, "ETH", eth.Code)
	assert.Equal(t, NoNumeric, eth.Numeric)
	assert.Equal(t, 18, eth.Scale)
	assert.Equal(t, mustID("token"), eth.Kind)

	xxx, ok := r.Currency(mustID("XXX"))
	require.True(t, ok)
	assert.False(t, xxx.HasNumeric())
	assert.False(t, xxx.HasFixedScale())

	old, ok := r.Currency(mustID("old/EUR"))
	require.True(t, ok)
	assert.Equal(t, "EUR", old.Code)
	assert.True(t, r.IsISOLike(old))
	assert.False(t, r.IsISOLike(eth))

	assert.Equal(t, 5, r.Len())
	assert.Equal(t, "1.0.0", r.Version())
	assert.Equal(t, attr.Values{"source": attr.OfString("test")}, r.Ext())
}

func TestBuild_SentinelNumericsAreNotIndexed(t *testing.T) {
	r := buildYAML(t, sample)

	_, ok := r.ByNumeric(NoNumeric)
	assert.False(t, ok)
	assert.Empty(t, r.NumericGroup(NoNumeric))
	for _, g := range [][]Currency{r.NumericGroup(978), r.NumericGroup(985)} {
		for _, c := range g {
			assert.True(t, c.HasNumeric())
		}
	}
}

func TestBuild_CollisionGroupsFollowWeight(t *testing.T) {
	r := buildYAML(t, sample)

	c, ok := r.ByCode("EUR")
	require.True(t, ok)
	assert.Equal(t, mustID("EUR"), c.ID)
	assert.Equal(t, mustIDs("EUR", "old/EUR"), ids(r.CodeGroup("EUR")))

	c, ok = r.ByNumeric(978)
	require.True(t, ok)
	assert.Equal(t, mustID("EUR"), c.ID)
	assert.Equal(t, mustIDs("EUR", "old/EUR"), ids(r.NumericGroup(978)))

	assert.Equal(t, mustIDs("EUR", "PLN", "XXX"), ids(r.DomainGroup(ISO4217)))
	assert.Equal(t, []Domain{"CRYPTO", ISO4217, "ISO-4217-LEGACY"}, r.Domains())
}

func TestBuild_DefaultWeightChangesCanonical(t *testing.T) {
	r := buildYAML(t, sample, WithDefaultWeight(20))

	c, ok := r.ByCode("EUR")
	require.True(t, ok)
	assert.Equal(t, mustID("old/EUR"), c.ID)
	assert.Equal(t, 20, r.Weight(mustID("old/EUR")))
	assert.Equal(t, 10, r.Weight(mustID("EUR")))
}

func TestBuild_CustomOrdering(t *testing.T) {
	lowestFirst := func(a, b Weighted) int { return -ByWeight(a, b) }
	r := buildYAML(t, sample, WithOrdering(lowestFirst))

	c, ok := r.ByNumeric(978)
	require.True(t, ok)
	assert.Equal(t, mustID("old/EUR"), c.ID)
}

func TestBuild_Countries(t *testing.T) {
	r := buildYAML(t, sample)

	c, ok := r.ByCountry(mustID("PL"))
	require.True(t, ok)
	assert.Equal(t, mustID("PLN"), c.ID)
	assert.Equal(t, mustIDs("DE", "FR"), r.Countries(mustID("EUR")))
	_, ok = r.ByCountry(mustID("ZZ"))
	assert.False(t, ok)
}

func TestBuild_ReportsUnknownCurrencies(t *testing.T) {
	var drops []dataset.Drop
	buildYAML(t, sample, WithReport(func(d dataset.Drop) { drops = append(drops, d) }))

	assert.Contains(t, drops, dataset.Drop{
		Branch: dataset.BranchCountries,
		Key:    mustID("ZZ"),
		Reason: "unknown currency",
	})
}

func TestBuild_LocalizedFallback(t *testing.T) {
	r := buildYAML(t, sample)
	pln := mustID("PLN")

	tests := []struct {
		locale, key string
		want        string
		found       bool
	}{
		{"pl", "name", "złoty", true},
		{"pl-PL", "name", "złoty", true},
		{"pl_PL", "name", "złoty", true},
		{"en", "symbol", "zł", true},
		{"en", "name", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.key, func(t *testing.T) {
			v, ok := r.Property(pln, tt.locale, tt.key)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, v.String())
			}
		})
	}
}

func TestBuild_TraitsAndHierarchies(t *testing.T) {
	r := buildYAML(t, sample)

	assert.Equal(t, mustIDs("fiat"), r.Traits(mustID("PLN")))
	assert.True(t, r.HasTrait(mustID("PLN"), mustID("fiat")))
	assert.True(t, r.HasTrait(mustID("PLN"), mustID("money")))
	assert.False(t, r.HasTrait(mustID("crypto/ETH"), mustID("money")))

	eth, _ := r.Currency(mustID("crypto/ETH"))
	assert.True(t, r.OfKind(eth, mustID("digital")))
}

func TestLookup(t *testing.T) {
	r := buildYAML(t, sample)

	c, ok := r.Lookup(":PLN")
	require.True(t, ok)
	assert.Equal(t, mustID("PLN"), c.ID)

	c, ok = r.Lookup(ident.Keyword{Namespace: "crypto", Name: "ETH"})
	require.True(t, ok)
	assert.Equal(t, mustID("crypto/ETH"), c.ID)

	_, ok = r.Lookup("  ")
	assert.False(t, ok)
}

func TestBuild_IsDeterministic(t *testing.T) {
	assert.Equal(t, buildYAML(t, sample), buildYAML(t, sample))
}

func TestBuild_Idempotent(t *testing.T) {
	cfg, err := dataset.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, Build(cfg), Build(dataset.Prepare(cfg, nil)))
}

func TestEmpty(t *testing.T) {
	r := Empty()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.IDs())
	_, ok := r.ByCode("EUR")
	assert.False(t, ok)
	assert.Equal(t, r, Build(nil))
}
