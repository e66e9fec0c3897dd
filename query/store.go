package query

import (
	"fmt"

	"github.com/rediwo/redi-records/base"
	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
)

// Store implements types.Store on top of a SQL driver. Drivers embed it.
type Store struct {
	*base.Driver
}

func NewStore(driver *base.Driver) *Store {
	return &Store{Driver: driver}
}

func (s *Store) Schemas() *schema.Registry {
	return s.SchemaRegistry
}

// Model returns a relation over all rows of the model's table.
func (s *Store) Model(modelName string) (types.Relation, error) {
	sch, err := s.SchemaRegistry.Get(modelName)
	if err != nil {
		return nil, err
	}
	return newRelation(s, sch), nil
}

// Association returns the rows associated with parent through the named
// association of modelName. parent must carry the owner-side join column.
func (s *Store) Association(modelName string, parent types.Record, association string) (types.Relation, error) {
	owner, err := s.SchemaRegistry.Get(modelName)
	if err != nil {
		return nil, err
	}

	assoc, ok := owner.FindAssociation(association)
	if !ok {
		return nil, fmt.Errorf("%w: %s on model %s", ErrAssociationNotFound, association, modelName)
	}

	target, err := s.SchemaRegistry.Target(assoc)
	if err != nil {
		return nil, err
	}

	ownerColumn, targetColumn, err := schema.JoinKeys(assoc, owner, target)
	if err != nil {
		return nil, err
	}

	value, ok := parent[ownerColumn]
	if !ok {
		return nil, fmt.Errorf("parent %s record has no column %s", modelName, ownerColumn)
	}

	rel := newRelation(s, target)
	return rel.Where(types.Eq{Column: target.GetTableName() + "." + targetColumn, Value: value}), nil
}
