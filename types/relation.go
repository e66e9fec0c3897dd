package types

import (
	"context"

	"github.com/rediwo/redi-records/schema"
)

// Relation is an immutable, lazily executed query over one model. Builder
// methods return a new Relation; nothing touches the database until a
// terminal method (Load, First, Count) is called. Errors raised while
// building are reported by ToSQL and the terminal methods.
type Relation interface {
	ModelName() string
	TableName() string

	Where(conditions ...Condition) Relation
	// Order orders by a column of the relation's own table.
	Order(field string, direction Direction) Relation
	// OrderBy orders by qualified columns, typically of joined tables.
	OrderBy(terms ...OrderTerm) Relation
	Joins(joins ...Join) Relation
	Includes(tree IncludeTree, mode IncludeMode) Relation
	Limit(limit int) Relation
	Offset(offset int) Relation

	ToSQL() (string, []any, error)
	CountSQL() (string, []any, error)

	Load(ctx context.Context) ([]Record, error)
	// First returns nil without error when no row matches.
	First(ctx context.Context) (Record, error)
	Count(ctx context.Context) (int64, error)
}

// Store hands out relations over registered models.
type Store interface {
	// Model returns a relation over all rows of the model's table.
	Model(modelName string) (Relation, error)
	// Association returns the relation of rows associated with parent, a
	// loaded record of modelName, through the named association.
	Association(modelName string, parent Record, association string) (Relation, error)
	Schemas() *schema.Registry
}

// Paginator bounds a relation. It receives the final order because
// cursor-style strategies depend on it.
type Paginator interface {
	Apply(records Relation, order OrderSpec) Relation
}
