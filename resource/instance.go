package resource

import "github.com/rediwo/redi-records/types"

// RelationFunc returns the records of one relationship of an instance.
type RelationFunc func() (types.Relation, error)

// Instance is a loaded record of a resource. The optional funcs override
// how related records are fetched, most specific last:
// RecordsFor for every relation, then RecordsForRelation (to-many) or
// RecordForRelation (to-one) by relation name.
type Instance struct {
	Resource *Resource
	Model    types.Record
	Context  Context

	RecordsFor         func(relationName string) (types.Relation, error)
	RecordsForRelation map[string]RelationFunc
	RecordForRelation  map[string]RelationFunc
}

func NewInstance(res *Resource, model types.Record, c Context) *Instance {
	return &Instance{Resource: res, Model: model, Context: c}
}
