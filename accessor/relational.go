package accessor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rediwo/redi-records/logger"
	"github.com/rediwo/redi-records/query"
	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/types"
)

// RelationalRecordAccessor implements RecordAccessor for a resource on top
// of a relational store. It keeps no per-request state and is safe for
// concurrent use.
type RelationalRecordAccessor struct {
	resource      *resource.Resource
	store         types.Store
	logger        logger.Logger
	strictFilters bool
}

var _ RecordAccessor = (*RelationalRecordAccessor)(nil)

// NewRelationalRecordAccessor compiles res against the store's models and
// returns its accessor.
func NewRelationalRecordAccessor(res *resource.Resource, store types.Store, opts ...Option) (*RelationalRecordAccessor, error) {
	if err := res.Compile(store.Schemas()); err != nil {
		return nil, err
	}

	a := &RelationalRecordAccessor{
		resource: res,
		store:    store,
		logger:   logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *RelationalRecordAccessor) Resource() *resource.Resource {
	return a.resource
}

// accessorFor returns an accessor for another resource with the same
// settings.
func (a *RelationalRecordAccessor) accessorFor(res *resource.Resource) (*RelationalRecordAccessor, error) {
	return NewRelationalRecordAccessor(res, a.store, WithLogger(a.logger), WithStrictFilters(a.strictFilters))
}

// Find returns the records matching filters, ordered and paginated per opts.
func (a *RelationalRecordAccessor) Find(ctx context.Context, filters resource.Filters, opts Options) ([]types.Record, error) {
	records, err := a.FindRelation(filters, opts)
	if err != nil {
		return nil, err
	}
	return records.Load(ctx)
}

// FindRelation builds the query Find executes.
func (a *RelationalRecordAccessor) FindRelation(filters resource.Filters, opts Options) (types.Relation, error) {
	if a.resource.FindRecords != nil {
		logger.Deprecated(a.logger, "In %s you overrode FindRecords. FindRecords has been deprecated in favor of filter strategies.", a.resource.Name)
		return a.resource.FindRecords(filters, opts.Context)
	}

	records, err := a.FilterRecords(filters, opts)
	if err != nil {
		return nil, err
	}

	order := a.resource.ConstructOrderOptions(opts.SortCriteria)
	records, err = a.SortRecords(records, order, opts.Context)
	if err != nil {
		return nil, err
	}

	return a.ApplyPagination(records, opts.Paginator, order), nil
}

// Count returns the number of records matching filters.
func (a *RelationalRecordAccessor) Count(ctx context.Context, filters resource.Filters, opts Options) (int64, error) {
	records, err := a.FilterRecords(filters, opts)
	if err != nil {
		return 0, err
	}
	return a.CountRecords(ctx, records)
}

// FindByKey returns the record whose primary key is key.
func (a *RelationalRecordAccessor) FindByKey(ctx context.Context, key any, opts Options) (types.Record, error) {
	filters := resource.Filters{a.resource.PrimaryKey: key}
	records, err := a.FindRelation(filters, opts.Without(OptPaginator, OptSortCriteria))
	if err != nil {
		return nil, err
	}

	record, err := records.First(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &RecordNotFoundError{Key: key}
	}
	return record, nil
}

// FindByKeys returns the records whose primary key is in keys. It does not
// go through a FindRecords override.
func (a *RelationalRecordAccessor) FindByKeys(ctx context.Context, keys []any, opts Options) ([]types.Record, error) {
	records, err := a.Records(opts)
	if err != nil {
		return nil, err
	}
	records, err = a.ApplyIncludes(records, opts.IncludeDirectives, opts.Context)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []any{}
	}
	return records.Where(types.Eq{Column: a.resource.PrimaryKey, Value: keys}).Load(ctx)
}

// FindByRelationship returns the records related to inst, filtered and
// ordered by the related resource and paginated when opts has a paginator.
func (a *RelationalRecordAccessor) FindByRelationship(ctx context.Context, inst *resource.Instance, relationship string, opts Options) ([]types.Record, error) {
	records, err := a.FindByRelationshipRelation(inst, relationship, opts)
	if err != nil {
		return nil, err
	}
	return records.Load(ctx)
}

// FindByRelationshipRelation builds the query FindByRelationship executes.
func (a *RelationalRecordAccessor) FindByRelationshipRelation(inst *resource.Instance, relationship string, opts Options) (types.Relation, error) {
	records, target, rel, err := a.relatedRecords(inst, relationship, opts)
	if err != nil {
		return nil, err
	}

	order := rel.Resource.ConstructOrderOptions(opts.SortCriteria)
	records, err = target.ApplySort(records, order, inst.Context)
	if err != nil {
		return nil, err
	}

	return a.ApplyPagination(records, opts.Paginator, order), nil
}

// CountForRelationship counts the records related to inst.
func (a *RelationalRecordAccessor) CountForRelationship(ctx context.Context, inst *resource.Instance, relationship string, opts Options) (int64, error) {
	records, _, _, err := a.relatedRecords(inst, relationship, opts)
	if err != nil {
		return 0, err
	}
	return a.CountRecords(ctx, records)
}

// relatedRecords fetches the records of relationship and applies
// opts.Filters with the accessor of the related resource.
func (a *RelationalRecordAccessor) relatedRecords(inst *resource.Instance, relationship string, opts Options) (types.Relation, *RelationalRecordAccessor, *resource.Relationship, error) {
	if inst == nil || inst.Resource == nil {
		return nil, nil, nil, fmt.Errorf("relationship %s: instance has no resource", relationship)
	}

	rel, ok := inst.Resource.Relationship(relationship)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %s on resource %s", ErrUnknownRelationship, relationship, inst.Resource.Name)
	}

	records, err := a.RecordsFor(inst, rel.RelationName(inst.Context))
	if err != nil {
		return nil, nil, nil, err
	}

	target, err := a.accessorFor(rel.Resource)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(opts.Filters) > 0 {
		records, err = target.ApplyFilters(records, opts.Filters, opts)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return records, target, rel, nil
}

// Records returns the base relation: the Records hook or every row of the
// resource's model.
func (a *RelationalRecordAccessor) Records(opts Options) (types.Relation, error) {
	if a.resource.Records != nil {
		return a.resource.Records(a.store, opts.Context)
	}
	return a.store.Model(a.resource.Model)
}

// RecordsFor returns the records reached from inst through relationName.
// Overrides on the instance win over the store association, the generic
// RecordsFor first.
func (a *RelationalRecordAccessor) RecordsFor(inst *resource.Instance, relationName string) (types.Relation, error) {
	if inst.RecordsFor != nil {
		return inst.RecordsFor(relationName)
	}

	if rel := relationshipFor(inst.Resource, relationName, inst.Context); rel != nil {
		overrides := inst.RecordForRelation
		if rel.Kind == resource.ToMany {
			overrides = inst.RecordsForRelation
		}
		if fn, ok := overrides[relationName]; ok && fn != nil {
			return fn()
		}
	}

	return a.store.Association(inst.Resource.Model, inst.Model, relationName)
}

// relationshipFor finds the relationship by name, then by relation name.
func relationshipFor(res *resource.Resource, name string, c resource.Context) *resource.Relationship {
	if rel, ok := res.Relationship(name); ok {
		return rel
	}
	for _, relName := range res.RelationshipNames() {
		rel := res.Relationships[relName]
		if rel.RelationName(c) == name {
			return rel
		}
	}
	return nil
}

// FilterRecords applies filters and the include directives of opts to the
// base relation.
func (a *RelationalRecordAccessor) FilterRecords(filters resource.Filters, opts Options) (types.Relation, error) {
	records, err := a.Records(opts)
	if err != nil {
		return nil, err
	}
	records, err = a.ApplyFilters(records, filters, opts)
	if err != nil {
		return nil, err
	}
	return a.ApplyIncludes(records, opts.IncludeDirectives, opts.Context)
}

// SortRecords orders records.
func (a *RelationalRecordAccessor) SortRecords(records types.Relation, order types.OrderSpec, c resource.Context) (types.Relation, error) {
	return a.ApplySort(records, order, c)
}

// CountRecords counts every row of records.
func (a *RelationalRecordAccessor) CountRecords(ctx context.Context, records types.Relation) (int64, error) {
	return records.Count(ctx)
}

// ApplyPagination bounds records with paginator, if any.
func (a *RelationalRecordAccessor) ApplyPagination(records types.Relation, paginator types.Paginator, order types.OrderSpec) types.Relation {
	if paginator == nil {
		return records
	}
	return paginator.Apply(records, order)
}

// ApplyFilters applies every filter in name order. A belongs-to
// relationship filters on its foreign key. Any other relationship filters
// on the related table's primary key and is force-included so that its
// table is joined; the predicate follows whatever alias that join gets.
func (a *RelationalRecordAccessor) ApplyFilters(records types.Relation, filters resource.Filters, opts Options) (types.Relation, error) {
	var required []string

	for _, name := range filters.Keys() {
		value := filters[name]

		if rel, ok := a.resource.Relationship(name); ok {
			var err error
			if rel.BelongsTo {
				records, err = a.ApplyFilter(records, rel.ForeignKey, value, opts.Context)
			} else {
				required = append(required, name)
				records, err = a.applyIncludedFilter(records, rel, value, opts.Context)
			}
			if err != nil {
				return nil, err
			}
			continue
		}

		if a.strictFilters && !a.knownFilter(name) {
			return nil, fmt.Errorf("%w: %s on resource %s", ErrUnknownFilter, name, a.resource.Name)
		}

		var err error
		records, err = a.ApplyFilter(records, name, value, opts.Context)
		if err != nil {
			return nil, err
		}
	}

	if len(required) == 0 {
		return records, nil
	}

	a.logger.Debug("%s: forcing eager include of %s", a.resource.Name, strings.Join(required, ", "))
	directives, err := resource.NewIncludeDirectives(a.resource, required, true)
	if err != nil {
		return nil, err
	}
	return a.ApplyIncludes(records, directives, opts.Context)
}

func (a *RelationalRecordAccessor) knownFilter(name string) bool {
	if a.resource.HasFilter(name) || name == a.resource.PrimaryKey {
		return true
	}
	model, err := a.store.Schemas().Get(a.resource.Model)
	if err != nil {
		return false
	}
	return model.HasColumn(name)
}

// ApplyFilter applies one filter. A declared strategy replaces the default
// equality (or IN for lists) predicate.
func (a *RelationalRecordAccessor) ApplyFilter(records types.Relation, filter string, value any, c resource.Context) (types.Relation, error) {
	if strategy, ok := a.resource.FilterStrategy(filter); ok {
		return strategy(records, value, c)
	}
	return records.Where(types.Eq{Column: filter, Value: value}), nil
}

// applyIncludedFilter filters on the primary key of the joined target of
// rel. A strategy declared under "<table>.<key>" takes precedence.
func (a *RelationalRecordAccessor) applyIncludedFilter(records types.Relation, rel *resource.Relationship, value any, c resource.Context) (types.Relation, error) {
	if strategy, ok := a.resource.FilterStrategy(rel.TableName + "." + rel.PrimaryKey); ok {
		return strategy(records, value, c)
	}
	return records.Where(types.IncludedEq{Path: rel.RelationName(c), Column: rel.PrimaryKey, Value: value}), nil
}

// ApplyIncludes asks the store to load the relationships of directives
// with records.
func (a *RelationalRecordAccessor) ApplyIncludes(records types.Relation, directives *resource.IncludeDirectives, c resource.Context) (types.Relation, error) {
	if directives.Empty() {
		return records, nil
	}

	tree, err := ResolveIncludes(a.resource, directives.ModelIncludes(), c)
	if err != nil {
		return nil, err
	}

	mode := types.IncludePreload
	if directives.ForceEager {
		mode = types.IncludeEager
	}
	return records.Includes(tree, mode), nil
}

// ResolveIncludes returns a copy of tree keyed by the relation names of the
// relationships it names, recursing into the related resources. Keys that
// already are relation names are kept.
func ResolveIncludes(res *resource.Resource, tree types.IncludeTree, c resource.Context) (types.IncludeTree, error) {
	out := make(types.IncludeTree, len(tree))
	for _, name := range tree.Names() {
		rel := relationshipFor(res, name, c)
		if rel == nil {
			return nil, &resource.ConfigurationError{
				Resource: res.Name,
				Reason:   fmt.Sprintf("cannot include unknown relationship %q", name),
			}
		}

		sub, err := ResolveIncludes(rel.Resource, tree[name], c)
		if err != nil {
			return nil, err
		}
		relationName := rel.RelationName(c)
		out[relationName] = out[relationName].Merge(sub)
	}
	return out, nil
}

// ApplySort orders records per order, field by field. Dotted fields join
// the association chain under <association>_sorting aliases and order by
// the column of the last one.
func (a *RelationalRecordAccessor) ApplySort(records types.Relation, order types.OrderSpec, c resource.Context) (types.Relation, error) {
	if a.resource.ApplySort != nil {
		return a.resource.ApplySort(records, order, c)
	}

	for _, field := range order {
		if !strings.Contains(field.Field, ".") {
			records = records.Order(field.Field, field.Direction)
			continue
		}

		parts := strings.Split(field.Field, ".")
		path, column := parts[:len(parts)-1], parts[len(parts)-1]

		chain, err := query.NewJoinBuilder(a.store.Schemas()).SortingJoins(records.ModelName(), path)
		if err != nil {
			if errors.Is(err, query.ErrAssociationNotFound) {
				return nil, &resource.ConfigurationError{
					Resource: a.resource.Name,
					Reason:   fmt.Sprintf("cannot sort by %s: %v", field.Field, err),
				}
			}
			return nil, err
		}

		records = records.
			Joins(chain.Joins...).
			OrderBy(types.OrderTerm{
				Column:    types.ColumnRef{Table: chain.Alias, Column: column},
				Direction: field.Direction,
			})
	}

	return records, nil
}
