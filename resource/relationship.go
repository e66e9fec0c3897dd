package resource

import (
	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/utils"
)

type Kind int

const (
	ToOne Kind = iota
	ToMany
)

func (k Kind) String() string {
	if k == ToMany {
		return "to-many"
	}
	return "to-one"
}

// Relationship links a resource to another one. Empty key and table fields
// are filled in by Resource.Compile from the model registry.
type Relationship struct {
	Name string
	Kind Kind
	// BelongsTo marks a to-one relationship whose foreign key lives on the
	// owner's table.
	BelongsTo bool
	Resource  *Resource

	ForeignKey string
	PrimaryKey string // primary key of the target
	TableName  string // table of the target

	// Relation is the association name used by the store. It defaults to
	// Name; RelationNameFunc overrides it per request.
	Relation         string
	RelationNameFunc func(c Context) string
}

// RelationName returns the store association traversed by this relationship.
func (r *Relationship) RelationName(c Context) string {
	if r.RelationNameFunc != nil {
		if name := r.RelationNameFunc(c); name != "" {
			return name
		}
	}
	if r.Relation != "" {
		return r.Relation
	}
	return r.Name
}

func (r *Relationship) compile(owner *Resource, reg *schema.Registry) error {
	if r.Resource == nil {
		return configErrorf(owner.Name, "relationship %s has no target resource", r.Name)
	}
	if r.BelongsTo && r.Kind == ToMany {
		return configErrorf(owner.Name, "relationship %s cannot be both belongs-to and to-many", r.Name)
	}

	target, err := reg.Get(r.Resource.Model)
	if err != nil {
		return configErrorf(owner.Name, "relationship %s targets unknown model %s", r.Name, r.Resource.Model)
	}

	if r.TableName == "" {
		r.TableName = target.GetTableName()
	}
	if r.PrimaryKey == "" {
		r.PrimaryKey = r.Resource.declaredKey()
		if r.PrimaryKey == "" {
			r.PrimaryKey = target.PrimaryKeyColumn()
		}
	}
	if r.ForeignKey == "" {
		if r.BelongsTo {
			r.ForeignKey = utils.ToSnakeCase(r.Name) + "_id"
		} else {
			r.ForeignKey = utils.ForeignKey(owner.Model)
		}
	}

	if r.RelationNameFunc == nil {
		model, err := reg.Get(owner.Model)
		if err != nil {
			return err
		}
		if _, ok := model.FindAssociation(r.RelationName(nil)); !ok {
			return configErrorf(owner.Name, "relationship %s: model %s has no association %s", r.Name, owner.Model, r.RelationName(nil))
		}
	}
	return nil
}
