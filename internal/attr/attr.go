// Package attr holds the closed set of values allowed in open extension
// maps: currency extensions, localized properties and the registry's ext
// bucket.
package attr

import (
	"fmt"
	"math"
	"sort"

	"github.com/moneta-labs/moneta/internal/ident"
)

// Kind enumerates the supported value shapes.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	ID
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case ID:
		return "id"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	id   ident.ID
	list []Value
	m    Values
}

// Values is a string-keyed map of tagged values.
type Values map[string]Value

func OfBool(b bool) Value { return Value{kind: Bool, b: b} }
func OfInt(i int64) Value { return Value{kind: Int, i: i} }
func OfFloat(f float64) Value { return Value{kind: Float, f: f} }
func OfString(s string) Value { return Value{kind: String, s: s} }
func OfID(id ident.ID) Value { return Value{kind: ID, id: id} }
func OfList(vs ...Value) Value { return Value{kind: List, list: append([]Value(nil), vs...)} }
func OfMap(m Values) Value { return Value{kind: Map, m: m.Clone()} }

// From converts a decoded configuration value into a Value. Shapes outside
// the closed set are stored by their fmt.Sprint form.
func From(x any) Value {
	switch v := x.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case bool:
		return OfBool(v)
	case int:
		return OfInt(int64(v))
	case int8:
		return OfInt(int64(v))
	case int16:
		return OfInt(int64(v))
	case int32:
		return OfInt(int64(v))
	case int64:
		return OfInt(v)
	case uint:
		return OfInt(int64(v))
	case uint8:
		return OfInt(int64(v))
	case uint16:
		return OfInt(int64(v))
	case uint32:
		return OfInt(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return OfFloat(float64(v))
		}
		return OfInt(int64(v))
	case float32:
		return OfFloat(float64(v))
	case float64:
		return OfFloat(v)
	case string:
		return OfString(v)
	case ident.ID:
		return OfID(v)
	case ident.Symbol, ident.Keyword:
		id, ok := ident.Normalize(v)
		if !ok {
			return Value{}
		}
		return OfID(id)
	case []any:
		out := make([]Value, len(v))
		for i, e := range v {
			out[i] = From(e)
		}
		return Value{kind: List, list: out}
	case []string:
		out := make([]Value, len(v))
		for i, e := range v {
			out[i] = OfString(e)
		}
		return Value{kind: List, list: out}
	case map[string]any:
		m := make(Values, len(v))
		for k, e := range v {
			m[k] = From(e)
		}
		return Value{kind: Map, m: m}
	case map[any]any:
		m := make(Values, len(v))
		for k, e := range v {
			m[keyString(k)] = From(e)
		}
		return Value{kind: Map, m: m}
	case Values:
		return OfMap(v)
	default:
		return OfString(fmt.Sprint(v))
	}
}

// FromMap converts every entry of a decoded map.
func FromMap(m map[string]any) Values {
	if m == nil {
		return nil
	}
	out := make(Values, len(m))
	for k, v := range m {
		out[k] = From(v)
	}
	return out
}

func keyString(k any) string {
	if id, ok := ident.Normalize(k); ok {
		return id.String()
	}
	return fmt.Sprint(k)
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload and whether v is a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Int returns the integer payload. Integral floats are accepted.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case Int:
		return v.i, true
	case Float:
		if v.f == math.Trunc(v.f) && !math.IsInf(v.f, 0) {
			return int64(v.f), true
		}
	}
	return 0, false
}

// Float returns the numeric payload as a float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Int:
		return float64(v.i), true
	}
	return 0, false
}

// Str returns the string payload and whether v is a String.
func (v Value) Str() (string, bool) { return v.s, v.kind == String }

// Ident returns the identifier payload and whether v is an ID.
func (v Value) Ident() (ident.ID, bool) { return v.id, v.kind == ID }

// List returns a copy of the list payload.
func (v Value) List() ([]Value, bool) {
	if v.kind != List {
		return nil, false
	}
	return append([]Value(nil), v.list...), true
}

// Map returns a copy of the map payload.
func (v Value) Map() (Values, bool) {
	if v.kind != Map {
		return nil, false
	}
	return v.m.Clone(), true
}

// String renders v for display.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return fmt.Sprint(v.b)
	case Int:
		return fmt.Sprint(v.i)
	case Float:
		return fmt.Sprint(v.f)
	case String:
		return v.s
	case ID:
		return v.id.String()
	default:
		return fmt.Sprint(v.Any())
	}
}

// Any converts v back into plain Go values (map[string]any, []any, scalars).
func (v Value) Any() any {
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	case ID:
		return v.id
	case List:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}
		return out
	case Map:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Any()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == o.b
	case Int:
		return v.i == o.i
	case Float:
		return v.f == o.f
	case String:
		return v.s == o.s
	case ID:
		return v.id == o.id
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case Map:
		return v.m.Equal(o.m)
	}
	return false
}

// Clone returns a shallow copy of m. Values are immutable, so this is
// enough to detach the map from its source.
func (m Values) Clone() Values {
	if m == nil {
		return nil
	}
	out := make(Values, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps hold equal values under the same keys.
func (m Values) Equal(o Values) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Keys returns the sorted keys of m.
func (m Values) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new map with the entries of o laid over m.
func (m Values) Merge(o Values) Values {
	out := make(Values, len(m)+len(o))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}
