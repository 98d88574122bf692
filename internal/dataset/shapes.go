package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/moneta-labs/moneta/internal/ident"
	"golang.org/x/text/language"
)

// entry is one key/value pair of a decoded map.
type entry struct {
	key any
	val any
}

// entries returns the pairs of any supported map shape, sorted by the
// canonical string form of their keys so every walk is deterministic.
func entries(v any) ([]entry, bool) {
	var out []entry
	switch m := v.(type) {
	case Config:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[string]any:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[any]any:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[ident.ID]any:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[string]string:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[string]int:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[ident.ID]ident.ID:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[ident.ID]int:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[ident.ID][]ident.ID:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case map[ident.ID]Localized:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case Localized:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	case Properties:
		for k, e := range m {
			out = append(out, entry{k, e})
		}
	default:
		return nil, false
	}
	sort.SliceStable(out, func(i, j int) bool { return lessKey(out[i].key, out[j].key) })
	return out, true
}

// lessKey orders keys by canonical form. Keys sharing a canonical form are
// ordered so that the exact canonical spelling comes last and therefore
// wins wherever later entries overwrite earlier ones; remaining ties fall
// back to the raw key.
func lessKey(a, b any) bool {
	ka, kb := sortKey(a), sortKey(b)
	if ka != kb {
		return ka < kb
	}
	if ea, eb := exactKey(a, ka), exactKey(b, kb); ea != eb {
		return eb
	}
	return fmt.Sprintf("%T:%v", a) < fmt.Sprintf("%T:%v", b)
}

func exactKey(k any, canonical string) bool {
	switch v := k.(type) {
	case ident.ID:
		return true
	case string:
		return v == canonical
	}
	return false
}

// sortKey is the canonical string form used to order keys and set members.
func sortKey(k any) string {
	if id, ok := ident.Normalize(k); ok {
		return id.String()
	}
	return fmt.Sprint(k)
}

// Linearize turns a scalar, sequence or set into an ordered slice.
// Sequences keep their order; sets (including YAML !!set maps) are sorted
// by canonical string form; a scalar becomes a one-element slice.
func Linearize(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []ident.ID:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case Set:
		keys := make([]any, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		return sortedSet(keys)
	case map[string]struct{}:
		keys := make([]any, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		return sortedSet(keys)
	case map[ident.ID]struct{}:
		keys := make([]any, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		return sortedSet(keys)
	case map[string]bool:
		keys := make([]any, 0, len(s))
		for k, in := range s {
			if in {
				keys = append(keys, k)
			}
		}
		return sortedSet(keys)
	}
	if es, ok := entries(v); ok {
		keys := make([]any, len(es))
		for i, e := range es {
			keys[i] = e.key
		}
		return keys
	}
	return []any{v}
}

func sortedSet(keys []any) []any {
	sort.SliceStable(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
	return keys
}

// KeyName converts an attribute or property key into its plain string name
// (":symbol" -> "symbol").
func KeyName(k any) (string, bool) {
	id, ok := ident.Normalize(k)
	if !ok {
		return "", false
	}
	return id.String(), true
}

// Lookup finds an attribute in a decoded map, matching keys by KeyName so
// "weight", ":weight" and ident.Keyword{Name: "weight"} are interchangeable.
func Lookup(m any, name string) (any, bool) {
	switch t := m.(type) {
	case map[string]any:
		if v, ok := t[name]; ok {
			return v, true
		}
	case Config:
		if v, ok := t[name]; ok {
			return v, true
		}
	}
	es, ok := entries(m)
	if !ok {
		return nil, false
	}
	for _, e := range es {
		if k, ok := KeyName(e.key); ok && k == name {
			return e.val, true
		}
	}
	return nil, false
}

// CoerceInt accepts integers, integral floats and numeric strings.
func CoerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return coerceFloat(float64(n))
	case float64:
		return coerceFloat(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func coerceFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}

// CanonicalLocale returns the canonical form of a locale key: BCP 47 tags
// are canonicalized ("en_us" -> "en-US"), "*" and "default" map to
// DefaultLocale, anything unparsable is kept as given.
func CanonicalLocale(k any) (string, bool) {
	name, ok := KeyName(k)
	if !ok {
		return "", false
	}
	if name == DefaultLocale || strings.EqualFold(name, "default") {
		return DefaultLocale, true
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return name, true
	}
	return tag.String(), true
}
