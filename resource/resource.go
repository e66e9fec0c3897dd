// Package resource describes the resources exposed to callers: the model
// they map to, their relationships, accepted filters and override hooks.
package resource

import (
	"sort"
	"sync"

	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
)

// RecordsHook replaces the base relation of every find.
type RecordsHook func(store types.Store, c Context) (types.Relation, error)

// ApplySortHook replaces the default ordering.
type ApplySortHook func(records types.Relation, order types.OrderSpec, c Context) (types.Relation, error)

// FindRecordsHook replaces the whole find pipeline.
//
// Deprecated: declare filter strategies instead.
type FindRecordsHook func(filters Filters, c Context) (types.Relation, error)

// Resource is the read-only definition a record accessor works from. Hooks
// are optional; a nil hook means the default behavior.
type Resource struct {
	Name          string
	Model         string
	PrimaryKey    string
	Relationships map[string]*Relationship
	Filters       map[string]Filter
	Delegates     map[string]FilterFunc
	DefaultSort   []SortCriterion

	Records     RecordsHook
	ApplySort   ApplySortHook
	FindRecords FindRecordsHook

	mu         sync.RWMutex
	strategies map[string]FilterFunc
	compiled   bool

	// keyMu guards the PrimaryKey default written by Compile. It is never
	// held while taking another lock, so related resources may read it
	// while compiling.
	keyMu sync.RWMutex
}

func New(name, model string) *Resource {
	return &Resource{
		Name:          name,
		Model:         model,
		Relationships: map[string]*Relationship{},
		Filters:       map[string]Filter{},
		Delegates:     map[string]FilterFunc{},
	}
}

func (r *Resource) BelongsTo(name string, target *Resource, foreignKey string) *Resource {
	return r.AddRelationship(&Relationship{Name: name, Kind: ToOne, BelongsTo: true, Resource: target, ForeignKey: foreignKey})
}

func (r *Resource) HasOne(name string, target *Resource) *Resource {
	return r.AddRelationship(&Relationship{Name: name, Kind: ToOne, Resource: target})
}

func (r *Resource) HasMany(name string, target *Resource) *Resource {
	return r.AddRelationship(&Relationship{Name: name, Kind: ToMany, Resource: target})
}

func (r *Resource) AddRelationship(rel *Relationship) *Resource {
	if r.Relationships == nil {
		r.Relationships = map[string]*Relationship{}
	}
	r.Relationships[rel.Name] = rel
	return r
}

func (r *Resource) Filter(name string, strategy FilterStrategy) *Resource {
	if r.Filters == nil {
		r.Filters = map[string]Filter{}
	}
	r.Filters[name] = Filter{Name: name, Strategy: strategy}
	return r
}

func (r *Resource) Delegate(name string, fn FilterFunc) *Resource {
	if r.Delegates == nil {
		r.Delegates = map[string]FilterFunc{}
	}
	r.Delegates[name] = fn
	return r
}

// Relationship returns the relationship declared under name.
func (r *Resource) Relationship(name string) (*Relationship, bool) {
	rel, ok := r.Relationships[name]
	return rel, ok
}

// RelationshipNames returns the declared relationship names, sorted.
func (r *Resource) RelationshipNames() []string {
	names := make([]string, 0, len(r.Relationships))
	for name := range r.Relationships {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile validates the resource against reg, fills relationship defaults
// and resolves named filter delegates. It is safe to call more than once.
func (r *Resource) Compile(reg *schema.Registry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.compiled {
		return nil
	}

	if r.Name == "" {
		return configErrorf("", "resource name cannot be empty")
	}
	model, err := reg.Get(r.Model)
	if err != nil {
		return configErrorf(r.Name, "unknown model %q", r.Model)
	}
	if r.PrimaryKey == "" {
		r.keyMu.Lock()
		r.PrimaryKey = model.PrimaryKeyColumn()
		r.keyMu.Unlock()
	}

	for _, name := range r.RelationshipNames() {
		if err := r.Relationships[name].compile(r, reg); err != nil {
			return err
		}
	}

	strategies := make(map[string]FilterFunc, len(r.Filters))
	for name, f := range r.Filters {
		if f.Strategy.IsDefault() {
			continue
		}
		switch f.Strategy.kind {
		case namedDelegate:
			fn, ok := r.Delegates[f.Strategy.name]
			if !ok || fn == nil {
				return configErrorf(r.Name, "filter %s refers to unknown delegate %q", name, f.Strategy.name)
			}
			strategies[name] = fn
		case inlineFunc:
			if f.Strategy.fn == nil {
				return configErrorf(r.Name, "filter %s has a nil function", name)
			}
			strategies[name] = f.Strategy.fn
		}
	}

	r.strategies = strategies
	r.compiled = true
	return nil
}

// declaredKey returns PrimaryKey, which may still be empty before Compile.
func (r *Resource) declaredKey() string {
	r.keyMu.RLock()
	defer r.keyMu.RUnlock()
	return r.PrimaryKey
}

// FilterStrategy returns the custom strategy for filter, if one is declared.
func (r *Resource) FilterStrategy(filter string) (FilterFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.strategies[filter]
	return fn, ok
}

// HasFilter reports whether filter is declared.
func (r *Resource) HasFilter(filter string) bool {
	_, ok := r.Filters[filter]
	return ok
}
