package registry

import (
	"testing"

	"github.com/moneta-labs/moneta/internal/ident"
	"github.com/stretchr/testify/assert"
)

func TestHierarchy_IsA(t *testing.T) {
	h := NewHierarchy(map[ident.ID][]ident.ID{
		mustID("stablecoin"): mustIDs("token", "pegged"),
		mustID("token"):      mustIDs("digital"),
		mustID("digital"):    mustIDs("token"),
	})

	assert.True(t, h.IsA(mustID("stablecoin"), mustID("stablecoin")))
	assert.True(t, h.IsA(mustID("stablecoin"), mustID("digital")))
	assert.True(t, h.IsA(mustID("stablecoin"), mustID("pegged")))
	assert.False(t, h.IsA(mustID("token"), mustID("pegged")))
	assert.Equal(t, mustIDs("token", "pegged", "digital"), h.Ancestors(mustID("stablecoin")))
}

func TestHierarchy_MergeReplacesParents(t *testing.T) {
	base := NewHierarchy(map[ident.ID][]ident.ID{mustID("a"): mustIDs("b")})
	over := NewHierarchy(map[ident.ID][]ident.ID{mustID("a"): mustIDs("c"), mustID("d"): mustIDs("e")})

	got := base.merge(over)

	assert.Equal(t, mustIDs("c"), got.Parents(mustID("a")))
	assert.Equal(t, mustIDs("e"), got.Parents(mustID("d")))
	assert.Equal(t, mustIDs("b"), base.Parents(mustID("a")))
}

func TestDomainISOLike(t *testing.T) {
	tests := []struct {
		d    Domain
		want bool
	}{
		{ISO4217, true},
		{"ISO-4217-LEGACY", true},
		{"ISO-42170", false},
		{"CRYPTO", false},
	}
	for _, tt := range tests {
		if got := tt.d.ISOLike(); got != tt.want {
			t.Errorf("Domain(%q).ISOLike() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestIsISOLike_ThroughDomainHierarchy(t *testing.T) {
	r := buildYAML(t, `
currencies:
  hist/XEU: { domain: HISTORIC }
hierarchies:
  domain:
    HISTORIC: ISO-4217
`)
	c, _ := r.Currency(mustID("hist/XEU"))
	assert.True(t, r.IsISOLike(c))
}

func TestIsISOLike_DomainHierarchyKeysAreCanonical(t *testing.T) {
	r := buildYAML(t, `
currencies:
  crypto/WBTC: {}
  foo/BAR: { domain: foo/bar }
  other/ZZZ: {}
hierarchies:
  domain:
    crypto: iso-4217
    FOO/BAR: [":ISO-4217", "iso-4217"]
`)
	wbtc, _ := r.Currency(mustID("crypto/WBTC"))
	assert.Equal(t, Domain("CRYPTO"), wbtc.Domain)
	assert.True(t, r.IsISOLike(wbtc))

	bar, _ := r.Currency(mustID("foo/BAR"))
	assert.Equal(t, Domain("FOO/BAR"), bar.Domain)
	assert.True(t, r.IsISOLike(bar))
	assert.Len(t, r.Hierarchies().Domain.Parents(domainID("FOO/BAR")), 1)

	zzz, _ := r.Currency(mustID("other/ZZZ"))
	assert.False(t, r.IsISOLike(zzz))
}
