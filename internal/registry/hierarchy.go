package registry

import "github.com/moneta-labs/moneta/internal/ident"

// Hierarchy is a classification tree (strictly, a DAG) mapping a child to
// its direct parents.
type Hierarchy struct {
	parents map[ident.ID][]ident.ID
}

// NewHierarchy copies parents into a Hierarchy.
func NewHierarchy(parents map[ident.ID][]ident.ID) Hierarchy {
	h := Hierarchy{parents: make(map[ident.ID][]ident.ID, len(parents))}
	for child, ps := range parents {
		if len(ps) > 0 {
			h.parents[child] = append([]ident.ID(nil), ps...)
		}
	}
	return h
}

// Parents returns the direct parents of id.
func (h Hierarchy) Parents(id ident.ID) []ident.ID {
	return append([]ident.ID(nil), h.parents[id]...)
}

// Len returns the number of children with parents.
func (h Hierarchy) Len() int { return len(h.parents) }

// IsA reports whether id equals ancestor or descends from it.
func (h Hierarchy) IsA(id, ancestor ident.ID) bool {
	if id == ancestor {
		return true
	}
	seen := map[ident.ID]bool{id: true}
	queue := []ident.ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range h.parents[cur] {
			if p == ancestor {
				return true
			}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// Ancestors returns every ancestor of id in breadth-first order.
func (h Hierarchy) Ancestors(id ident.ID) []ident.ID {
	var out []ident.ID
	seen := map[ident.ID]bool{id: true}
	queue := []ident.ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range h.parents[cur] {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
				queue = append(queue, p)
			}
		}
	}
	return out
}

// merge returns h with the parent lists of o replacing those of h per child.
func (h Hierarchy) merge(o Hierarchy) Hierarchy {
	out := NewHierarchy(h.parents)
	for child, ps := range o.parents {
		out.parents[child] = append([]ident.ID(nil), ps...)
	}
	return out
}

// Hierarchies groups the domain, kind and trait classification trees.
type Hierarchies struct {
	Domain Hierarchy
	Kind   Hierarchy
	Traits Hierarchy
}

func (h Hierarchies) merge(o Hierarchies) Hierarchies {
	return Hierarchies{
		Domain: h.Domain.merge(o.Domain),
		Kind:   h.Kind.merge(o.Kind),
		Traits: h.Traits.merge(o.Traits),
	}
}

func emptyHierarchies() Hierarchies {
	return Hierarchies{
		Domain: NewHierarchy(nil),
		Kind:   NewHierarchy(nil),
		Traits: NewHierarchy(nil),
	}
}
