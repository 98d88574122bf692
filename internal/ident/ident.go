package ident

import (
	"fmt"
	"sort"
	"strings"
)

// Marker is the leading character that printed identifiers may carry
// (":PLN"). Normalize strips one occurrence of it.
const Marker = ':'

// ID is a canonical, optionally namespaced identifier. It is comparable and
// used as a map key throughout the registry.
type ID struct {
	Namespace string
	Name      string
}

// Symbol is a raw symbolic key as produced by programmatic configuration.
type Symbol struct {
	Namespace string
	Name      string
}

// Keyword is a raw keyword key. It normalizes exactly like a Symbol.
type Keyword struct {
	Namespace string
	Name      string
}

// New returns an ID with the given namespace and name.
func New(namespace, name string) ID {
	return ID{Namespace: namespace, Name: name}
}

// IsZero reports whether id is the zero identifier.
func (id ID) IsZero() bool {
	return id.Name == "" && id.Namespace == ""
}

// String returns "namespace/name", or just the name when there is no
// namespace. A form that would start with Marker gets one more, so that
// Normalize(id.String()) == id holds for every normalized id.
func (id ID) String() string {
	s := id.Name
	if id.Namespace != "" {
		s = id.Namespace + "/" + id.Name
	}
	if len(s) > 0 && s[0] == Marker {
		return string(Marker) + s
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, ok := Normalize(string(b))
	if !ok {
		return fmt.Errorf("blank identifier")
	}
	*id = parsed
	return nil
}

// Compare orders identifiers by namespace, then name. Identifiers without a
// namespace sort first.
func Compare(a, b ID) int {
	if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Sort sorts ids in place by Compare.
func Sort(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return Compare(ids[i], ids[j]) < 0 })
}

// MustParse normalizes s and panics if it is blank.
func MustParse(s string) ID {
	id, ok := Normalize(s)
	if !ok {
		panic(fmt.Sprintf("ident: blank identifier %q", s))
	}
	return id
}

// Normalize converts a raw key into an ID. It is total and pure: a nil
// input or a string that is blank after trimming (and after stripping a
// single leading Marker) yields false.
func Normalize(x any) (ID, bool) {
	switch v := x.(type) {
	case nil:
		return ID{}, false
	case ID:
		return v, !v.IsZero()
	case *ID:
		if v == nil {
			return ID{}, false
		}
		return *v, !v.IsZero()
	case Symbol:
		return fromParts(v.Namespace, v.Name)
	case Keyword:
		return fromParts(v.Namespace, v.Name)
	case string:
		return fromString(v)
	case fmt.Stringer:
		return fromString(v.String())
	default:
		return fromString(fmt.Sprint(v))
	}
}

// fromParts keeps the namespace of a symbolic key. Parts that could not
// survive a round trip through String are re-read from their joined form.
func fromParts(namespace, name string) (ID, bool) {
	namespace, name = strings.TrimSpace(namespace), strings.TrimSpace(name)
	switch {
	case name == "":
		return fromString(namespace)
	case namespace == "":
		return fromString(name)
	case strings.Contains(namespace, "/"):
		return fromString(namespace + "/" + name)
	}
	return ID{Namespace: namespace, Name: name}, true
}

func fromString(s string) (ID, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 0 && s[0] == Marker {
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return ID{}, false
	}
	ns, name, found := strings.Cut(s, "/")
	if !found || ns == "" || name == "" {
		return ID{Name: s}, true
	}
	return ID{Namespace: ns, Name: name}, true
}
