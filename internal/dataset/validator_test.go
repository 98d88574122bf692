package dataset

import (
	"strings"
	"testing"
)

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got issues: %v", result.Issues)
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	result, err := ValidateFile("testdata/invalid-scale.yaml")
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}

	var sawScale bool
	for _, issue := range result.Issues {
		if strings.HasPrefix(issue.Path, "/currencies/PLN/scale") {
			sawScale = true
		}
	}
	if !sawScale {
		t.Errorf("expected an issue for /currencies/PLN/scale, got %v", result.Issues)
	}
}

func TestValidate_BadYAML(t *testing.T) {
	if _, err := Validate([]byte("a: [b")); err == nil {
		t.Fatal("expected error for unparsable YAML")
	}
}

func TestJSONCompatible_StringifiesKeys(t *testing.T) {
	out := jsonCompatible(map[any]any{1: []any{map[any]any{true: "x"}}})
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("got %T", out)
	}
	list := m["1"].([]any)
	if list[0].(map[string]any)["true"] != "x" {
		t.Errorf("nested key not converted: %v", out)
	}
}
