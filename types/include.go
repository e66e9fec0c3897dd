package types

import "sort"

// IncludeTree is a nested set of association names to load alongside the
// main records. A leaf is an empty (or nil) subtree.
type IncludeTree map[string]IncludeTree

type IncludeMode int

const (
	// IncludePreload loads associations with batched follow-up queries.
	IncludePreload IncludeMode = iota
	// IncludeEager also joins the associations into the main query so that
	// conditions may reference their tables.
	IncludeEager
)

// NewIncludeTree builds a tree of leaves from names.
func NewIncludeTree(names ...string) IncludeTree {
	t := IncludeTree{}
	for _, n := range names {
		t[n] = IncludeTree{}
	}
	return t
}

// Merge returns a new tree holding the union of t and other.
func (t IncludeTree) Merge(other IncludeTree) IncludeTree {
	out := t.Clone()
	for name, sub := range other {
		out[name] = out[name].Merge(sub)
	}
	return out
}

func (t IncludeTree) Clone() IncludeTree {
	out := make(IncludeTree, len(t))
	for name, sub := range t {
		out[name] = sub.Clone()
	}
	return out
}

// Names returns the top-level names in sorted order.
func (t IncludeTree) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t IncludeTree) Empty() bool {
	return len(t) == 0
}
