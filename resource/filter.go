package resource

import (
	"sort"

	"github.com/rediwo/redi-records/types"
)

// Context is the opaque per-request value (current user, tenant, ...)
// handed through to hooks and filter strategies unexamined.
type Context = any

// FilterFunc applies one filter value to records. Its result replaces
// records.
type FilterFunc func(records types.Relation, value any, c Context) (types.Relation, error)

type strategyKind int

const (
	defaultPredicate strategyKind = iota
	namedDelegate
	inlineFunc
)

// FilterStrategy says how a filter is applied: the default equality
// predicate, a delegate registered on the resource under a name, or an
// inline function.
type FilterStrategy struct {
	kind strategyKind
	name string
	fn   FilterFunc
}

func DefaultPredicate() FilterStrategy {
	return FilterStrategy{kind: defaultPredicate}
}

// NamedDelegate refers to Resource.Delegates[name]. The name is resolved
// when the resource is compiled.
func NamedDelegate(name string) FilterStrategy {
	return FilterStrategy{kind: namedDelegate, name: name}
}

func InlineFunc(fn FilterFunc) FilterStrategy {
	return FilterStrategy{kind: inlineFunc, fn: fn}
}

func (s FilterStrategy) IsDefault() bool {
	return s.kind == defaultPredicate
}

// Filter declares a filter the resource accepts.
type Filter struct {
	Name     string
	Strategy FilterStrategy
}

// Filters maps filter names (columns or relationship names) to a scalar or
// a list value.
type Filters map[string]any

// Keys returns the filter names in sorted order.
func (f Filters) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
