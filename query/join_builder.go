package query

import (
	"fmt"
	"strings"

	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
)

// SortingSuffix namespaces the aliases of joins added for ordering so they
// never collide with joins introduced by includes or custom filters.
const SortingSuffix = "_sorting"

// SortingAlias returns the alias used to join association for ordering.
func SortingAlias(association string) string {
	return association + SortingSuffix
}

// JoinBuilder builds join clauses from associations
type JoinBuilder struct {
	registry     *schema.Registry
	tableAliases map[string]bool
	joinedPaths  map[string]string // lowercased association path -> alias
}

// NewJoinBuilder creates a join builder; reserved aliases are never handed out.
func NewJoinBuilder(registry *schema.Registry, reservedAliases ...string) *JoinBuilder {
	b := &JoinBuilder{
		registry:     registry,
		tableAliases: make(map[string]bool),
		joinedPaths:  make(map[string]string),
	}
	for _, alias := range reservedAliases {
		b.tableAliases[alias] = true
	}
	return b
}

// SortChain is the result of resolving a dotted ordering path.
type SortChain struct {
	Joins  []types.Join
	Alias  string         // alias of the last joined table
	Target *schema.Schema // model the ordered column belongs to
}

// SortingJoins resolves path, a list of association names starting at
// modelName, into LEFT JOINs aliased <association>_sorting. Each hop is
// matched case-insensitively. An empty path resolves to the model itself.
func (b *JoinBuilder) SortingJoins(modelName string, path []string) (SortChain, error) {
	current, err := b.registry.Get(modelName)
	if err != nil {
		return SortChain{}, err
	}

	chain := SortChain{Alias: current.GetTableName(), Target: current}
	prev := current.GetTableName()

	for _, name := range path {
		assoc, ok := current.FindAssociation(name)
		if !ok {
			return SortChain{}, fmt.Errorf("%w: %s on model %s", ErrAssociationNotFound, name, current.Name)
		}

		target, err := b.registry.Target(assoc)
		if err != nil {
			return SortChain{}, err
		}

		alias := SortingAlias(assoc.Name)
		on, err := buildJoinCondition(assoc, current, target, prev, alias)
		if err != nil {
			return SortChain{}, err
		}

		chain.Joins = append(chain.Joins, types.Join{
			Kind:  types.LeftJoin,
			Table: target.GetTableName(),
			Alias: alias,
			On:    on,
		})

		prev = alias
		current = target
	}

	chain.Alias = prev
	chain.Target = current
	return chain, nil
}

// IncludeJoins returns the LEFT JOINs that make every association of tree
// available to conditions of the main query. A table joined for the first
// time is aliased by its own name.
func (b *JoinBuilder) IncludeJoins(modelName string, tree types.IncludeTree) ([]types.Join, error) {
	root, err := b.registry.Get(modelName)
	if err != nil {
		return nil, err
	}
	b.tableAliases[root.GetTableName()] = true
	return b.includeJoins(root, root.GetTableName(), "", tree)
}

func (b *JoinBuilder) includeJoins(owner *schema.Schema, ownerAlias, parentPath string, tree types.IncludeTree) ([]types.Join, error) {
	var joins []types.Join

	for _, name := range tree.Names() {
		assoc, ok := owner.FindAssociation(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s on model %s", ErrAssociationNotFound, name, owner.Name)
		}

		target, err := b.registry.Target(assoc)
		if err != nil {
			return nil, err
		}

		path := assoc.Name
		if parentPath != "" {
			path = parentPath + "." + assoc.Name
		}

		key := strings.ToLower(path)
		alias, exists := b.joinedPaths[key]
		if !exists {
			alias = b.generateAlias(target.GetTableName(), assoc.Name, owner.GetTableName())
			on, err := buildJoinCondition(assoc, owner, target, ownerAlias, alias)
			if err != nil {
				return nil, err
			}
			joins = append(joins, types.Join{
				Kind:  types.LeftJoin,
				Table: target.GetTableName(),
				Alias: alias,
				On:    on,
			})
			b.joinedPaths[key] = alias
		}

		nested, err := b.includeJoins(target, alias, path, tree[name])
		if err != nil {
			return nil, err
		}
		joins = append(joins, nested...)
	}

	return joins, nil
}

// IncludeAlias returns the alias of the include join for the dotted
// association path, matched case-insensitively. A nil builder has joined
// nothing.
func (b *JoinBuilder) IncludeAlias(path string) (string, bool) {
	if b == nil {
		return "", false
	}
	alias, ok := b.joinedPaths[strings.ToLower(path)]
	return alias, ok
}

// generateAlias hands out the table name first, then <association>_<parentTable>,
// then numbered variants of the latter.
func (b *JoinBuilder) generateAlias(table, association, parentTable string) string {
	candidates := []string{table, strings.ToLower(association) + "_" + parentTable}
	for _, alias := range candidates {
		if !b.tableAliases[alias] {
			b.tableAliases[alias] = true
			return alias
		}
	}
	base := candidates[1]
	for i := 2; ; i++ {
		alias := fmt.Sprintf("%s_%d", base, i)
		if !b.tableAliases[alias] {
			b.tableAliases[alias] = true
			return alias
		}
	}
}

// buildJoinCondition equates the association's key columns between the owner
// (visible as ownerAlias) and the target (visible as targetAlias).
func buildJoinCondition(assoc *schema.Association, owner, target *schema.Schema, ownerAlias, targetAlias string) ([]types.ColumnPair, error) {
	ownerColumn, targetColumn, err := schema.JoinKeys(assoc, owner, target)
	if err != nil {
		return nil, err
	}
	return []types.ColumnPair{{
		Left:  types.ColumnRef{Table: targetAlias, Column: targetColumn},
		Right: types.ColumnRef{Table: ownerAlias, Column: ownerColumn},
	}}, nil
}
