package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/ident"
	"github.com/moneta-labs/moneta/internal/registry"
)

const testData = `
hierarchies:
  kind:
    token: digital
  traits:
    reserve: fiat
currencies:
  EUR:
    numeric: 978
    scale: 2
    kind: fiat
    traits: [reserve]
    countries: [DE, FR]
    weight: 10
    localized:
      en: { name: Euro }
      "*": { symbol: "€" }
  PLN:
    numeric: 985
    scale: 2
    kind: fiat
    traits: [fiat]
    localized:
      en: { name: Zloty }
  old/EUR:
    numeric: 978
    code: EUR
    domain: ISO-4217-LEGACY
  crypto/ETH:
    scale: 18
    kind: token
    traits: [crypto]
    localized:
      en: { name: Ether }
`

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	cfg, err := dataset.Parse([]byte(testData))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return registry.Build(cfg)
}

func currency(t *testing.T, r *registry.Registry, id string) registry.Currency {
	t.Helper()
	c, ok := r.Currency(ident.MustParse(id))
	if !ok {
		t.Fatalf("currency %s not found", id)
	}
	return c
}

func TestMatchesSearchByQuery(t *testing.T) {
	r := testRegistry(t)
	eur := currency(t, r, "EUR")

	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"empty query matches all", "", true},
		{"exact code", "EUR", true},
		{"case insensitive code", "eur", true},
		{"numeric code", "978", true},
		{"localized name", "eur", true},
		{"partial name", "ur", true},
		{"no match", "zloty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesSearch(r, eur, searchFilter{Query: tt.query, Locale: "en"})
			if got != tt.expected {
				t.Errorf("matchesSearch(query=%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestMatchesSearchByDomainAndKind(t *testing.T) {
	r := testRegistry(t)
	eth := currency(t, r, "crypto/ETH")

	tests := []struct {
		name     string
		filter   searchFilter
		expected bool
	}{
		{"no filter", searchFilter{}, true},
		{"matching domain", searchFilter{Domain: "crypto"}, true},
		{"other domain", searchFilter{Domain: "ISO-4217"}, false},
		{"direct kind", searchFilter{Kind: "token"}, true},
		{"kind through hierarchy", searchFilter{Kind: "digital"}, true},
		{"other kind", searchFilter{Kind: "fiat"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesSearch(r, eth, tt.filter); got != tt.expected {
				t.Errorf("matchesSearch(%+v) = %v, want %v", tt.filter, got, tt.expected)
			}
		})
	}
}

func TestMatchesSearchByTrait(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		id       string
		traits   string
		expected bool
	}{
		{"direct trait", "PLN", "fiat", true},
		{"trait through hierarchy", "EUR", "fiat", true},
		{"any of several", "crypto/ETH", "fiat, crypto", true},
		{"no matching trait", "crypto/ETH", "fiat", false},
		{"no traits", "old/EUR", "fiat", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := searchFilter{Traits: parseTraits(tt.traits)}
			if got := matchesSearch(r, currency(t, r, tt.id), f); got != tt.expected {
				t.Errorf("matchesSearch(%s, traits=%q) = %v, want %v", tt.id, tt.traits, got, tt.expected)
			}
		})
	}
}

func TestSearchCurrencies(t *testing.T) {
	r := testRegistry(t)

	got := searchCurrencies(r, searchFilter{Query: "EUR", Locale: "en"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "EUR" || got[0].Name != "Euro" || got[0].Numeric != 978 || got[0].Weight != 10 {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].ID != "old/EUR" {
		t.Errorf("second entry ID = %q, want old/EUR", got[1].ID)
	}
}

func TestPrintSearchTable(t *testing.T) {
	var buf bytes.Buffer
	entries := []searchEntry{
		{ID: "EUR", Code: "EUR", Numeric: 978, Domain: "ISO-4217", Name: "Euro"},
		{ID: "crypto/ETH", Code: "ETH", Domain: "CRYPTO"},
		{ID: "AUD", Code: "AUD", Numeric: 36, Domain: "ISO-4217"},
	}
	if err := printSearchTable(&buf, entries); err != nil {
		t.Fatalf("printSearchTable error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], " - ") {
		t.Errorf("missing numeric placeholder in %q", lines[2])
	}
	if !strings.Contains(lines[3], "036") {
		t.Errorf("numeric not zero-padded in %q", lines[3])
	}
}
