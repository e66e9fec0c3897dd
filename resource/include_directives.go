package resource

import (
	"strings"

	"github.com/rediwo/redi-records/types"
)

// IncludeDirectives is a parsed set of include paths, keyed by
// relationship names. ForceEager asks the store to join the included
// relationships into the main query.
type IncludeDirectives struct {
	tree       types.IncludeTree
	ForceEager bool
}

// NewIncludeDirectives parses dotted include paths ("comments.author")
// starting at res. Every segment must name a relationship.
func NewIncludeDirectives(res *Resource, paths []string, forceEager bool) (*IncludeDirectives, error) {
	tree := types.IncludeTree{}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		current := res
		node := tree
		for _, segment := range strings.Split(path, ".") {
			rel, ok := current.Relationship(segment)
			if !ok {
				return nil, configErrorf(current.Name, "cannot include unknown relationship %q", segment)
			}
			if node[segment] == nil {
				node[segment] = types.IncludeTree{}
			}
			node = node[segment]
			current = rel.Resource
		}
	}
	return &IncludeDirectives{tree: tree, ForceEager: forceEager}, nil
}

// ModelIncludes returns a copy of the include tree.
func (d *IncludeDirectives) ModelIncludes() types.IncludeTree {
	if d == nil {
		return types.IncludeTree{}
	}
	return d.tree.Clone()
}

func (d *IncludeDirectives) Empty() bool {
	return d == nil || d.tree.Empty()
}
