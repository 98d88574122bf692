package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestViewOf(t *testing.T) {
	r := testRegistry(t)

	v := viewOf(r, currency(t, r, "EUR"), "en-GB")

	if v.Name != "Euro" {
		t.Errorf("Name = %q, want %q", v.Name, "Euro")
	}
	if v.Symbol != "€" {
		t.Errorf("Symbol = %q, want %q", v.Symbol, "€")
	}
	if v.Scale == nil || *v.Scale != 2 {
		t.Errorf("Scale = %v, want 2", v.Scale)
	}
	if strings.Join(v.Countries, ",") != "DE,FR" {
		t.Errorf("Countries = %v, want [DE FR]", v.Countries)
	}
	if strings.Join(v.Collisions, ",") != "old/EUR" {
		t.Errorf("Collisions = %v, want [old/EUR]", v.Collisions)
	}
}

func TestViewOf_AutoScale(t *testing.T) {
	r := testRegistry(t)

	v := viewOf(r, currency(t, r, "old/EUR"), "en")
	if v.Scale != nil {
		t.Errorf("Scale = %d, want nil", *v.Scale)
	}

	var buf bytes.Buffer
	if err := printCurrency(&buf, v); err != nil {
		t.Fatalf("printCurrency error: %v", err)
	}
	if !strings.Contains(buf.String(), "auto") {
		t.Errorf("output missing auto scale:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "ISO-4217-LEGACY") {
		t.Errorf("output missing domain:\n%s", buf.String())
	}
}

func TestDataVersionNote(t *testing.T) {
	tests := []struct {
		current, dist string
		wantNote      bool
	}{
		{"1.0.0", "2.0.0", true},
		{"2.0.0", "1.0.0", false},
		{"1.0.0", "1.0.0", false},
		{"", "1.0.0", false},
		{"garbage", "1.0.0", false},
	}
	for _, tt := range tests {
		got := dataVersionNote(tt.current, tt.dist)
		if (got != "") != tt.wantNote {
			t.Errorf("dataVersionNote(%q, %q) = %q, want note=%v", tt.current, tt.dist, got, tt.wantNote)
		}
	}
}
