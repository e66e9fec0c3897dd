package query

import (
	"context"
	"fmt"

	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
	"github.com/rediwo/redi-records/utils"
)

// Relation is the SQL implementation of types.Relation.
type Relation struct {
	store       *Store
	schema      *schema.Schema
	conditions  []types.Condition
	joins       []types.Join
	orders      []types.OrderTerm
	includes    types.IncludeTree
	includeMode types.IncludeMode
	limit       *int
	offset      *int
	err         error
}

func newRelation(store *Store, sch *schema.Schema) *Relation {
	return &Relation{
		store:    store,
		schema:   sch,
		includes: types.IncludeTree{},
	}
}

func (r *Relation) clone() *Relation {
	out := *r
	out.conditions = append([]types.Condition(nil), r.conditions...)
	out.joins = append([]types.Join(nil), r.joins...)
	out.orders = append([]types.OrderTerm(nil), r.orders...)
	out.includes = r.includes.Clone()
	return &out
}

func (r *Relation) ModelName() string {
	return r.schema.Name
}

func (r *Relation) TableName() string {
	return r.schema.GetTableName()
}

func (r *Relation) Schema() *schema.Schema {
	return r.schema
}

// Where adds conditions joined with AND
func (r *Relation) Where(conditions ...types.Condition) types.Relation {
	out := r.clone()
	for _, c := range conditions {
		if c == nil {
			continue
		}
		out.conditions = append(out.conditions, c)
	}
	return out
}

// Order adds ordering by a column of the relation's table
func (r *Relation) Order(field string, direction types.Direction) types.Relation {
	out := r.clone()
	if field == "" {
		out.err = fmt.Errorf("order field must not be empty")
		return out
	}
	if direction != types.ASC && direction != types.DESC {
		out.err = fmt.Errorf("invalid sort direction: %q", direction)
		return out
	}
	out.orders = append(out.orders, types.OrderTerm{Column: types.ParseColumnRef(field), Direction: direction})
	return out
}

// OrderBy adds ordering by qualified columns
func (r *Relation) OrderBy(terms ...types.OrderTerm) types.Relation {
	out := r.clone()
	for _, term := range terms {
		if term.Direction != types.ASC && term.Direction != types.DESC {
			out.err = fmt.Errorf("invalid sort direction: %q", term.Direction)
			return out
		}
		out.orders = append(out.orders, term)
	}
	return out
}

// Joins adds join clauses; a join whose name is already joined is skipped
func (r *Relation) Joins(joins ...types.Join) types.Relation {
	out := r.clone()
	for _, j := range joins {
		if out.hasJoin(j.Name()) {
			continue
		}
		out.joins = append(out.joins, j)
	}
	return out
}

func (r *Relation) hasJoin(name string) bool {
	for _, j := range r.joins {
		if j.Name() == name {
			return true
		}
	}
	return false
}

// Includes merges tree into the associations to load. Eager mode is sticky.
func (r *Relation) Includes(tree types.IncludeTree, mode types.IncludeMode) types.Relation {
	out := r.clone()
	out.includes = out.includes.Merge(tree)
	if mode == types.IncludeEager {
		out.includeMode = types.IncludeEager
	}
	return out
}

func (r *Relation) Limit(limit int) types.Relation {
	out := r.clone()
	if limit < 0 {
		out.err = fmt.Errorf("limit must not be negative: %d", limit)
		return out
	}
	out.limit = &limit
	return out
}

func (r *Relation) Offset(offset int) types.Relation {
	out := r.clone()
	if offset < 0 {
		out.err = fmt.Errorf("offset must not be negative: %d", offset)
		return out
	}
	out.offset = &offset
	return out
}

// Load executes the query and preloads the included associations
func (r *Relation) Load(ctx context.Context) ([]types.Record, error) {
	sql, args, extra, err := r.buildSelect()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}

	rows, err := r.store.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	maps, err := utils.ScanRowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows: %w", err)
	}

	records := make([]types.Record, len(maps))
	for i, m := range maps {
		for _, name := range extra {
			delete(m, name)
		}
		records[i] = types.Record(m)
	}

	if !r.includes.Empty() && len(records) > 0 {
		loader := newIncludeLoader(r.store)
		if err := loader.load(ctx, r.schema, records, r.includes); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// First returns the first matching record or nil
func (r *Relation) First(ctx context.Context) (types.Record, error) {
	records, err := r.Limit(1).Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Count returns the number of matching records
func (r *Relation) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.CountSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build count SQL: %w", err)
	}

	rows, err := r.store.Query(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w", err)
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}
	return count, rows.Err()
}
