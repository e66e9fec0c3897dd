package schema

import (
	"fmt"

	"github.com/rediwo/redi-records/utils"
)

type AssociationKind string

const (
	// BelongsTo keeps the foreign key on the owning table.
	BelongsTo AssociationKind = "belongsTo"
	// HasOne and HasMany keep the foreign key on the target table.
	HasOne  AssociationKind = "hasOne"
	HasMany AssociationKind = "hasMany"
)

// Association is a model-level link between two tables.
type Association struct {
	Name       string
	Kind       AssociationKind
	Model      string // target model name
	ForeignKey string // column holding the reference
	References string // referenced column, empty means the primary key of the referenced side
}

// NewBelongsTo declares an association whose foreign key lives on the owner.
// An empty foreignKey defaults to "<name>_id".
func NewBelongsTo(name, model, foreignKey string) Association {
	if foreignKey == "" {
		foreignKey = utils.ToSnakeCase(name) + "_id"
	}
	return Association{Name: name, Kind: BelongsTo, Model: model, ForeignKey: foreignKey}
}

// NewHasMany declares a one-to-many association. An empty foreignKey
// defaults to "<owner>_id" once the owner is known, see JoinKeys.
func NewHasMany(name, model, foreignKey string) Association {
	return Association{Name: name, Kind: HasMany, Model: model, ForeignKey: foreignKey}
}

// NewHasOne declares a one-to-one association with the key on the target.
func NewHasOne(name, model, foreignKey string) Association {
	return Association{Name: name, Kind: HasOne, Model: model, ForeignKey: foreignKey}
}

func (a Association) IsCollection() bool {
	return a.Kind == HasMany
}

// JoinKeys returns the column on the owner and the column on the target that
// must be equal for two rows to be associated.
func JoinKeys(a *Association, owner, target *Schema) (ownerColumn, targetColumn string, err error) {
	switch a.Kind {
	case BelongsTo:
		targetColumn = a.References
		if targetColumn == "" {
			targetColumn = target.PrimaryKeyColumn()
		}
		return a.ForeignKey, targetColumn, nil

	case HasOne, HasMany:
		ownerColumn = a.References
		if ownerColumn == "" {
			ownerColumn = owner.PrimaryKeyColumn()
		}
		targetColumn = a.ForeignKey
		if targetColumn == "" {
			targetColumn = utils.ForeignKey(owner.Name)
		}
		return ownerColumn, targetColumn, nil

	default:
		return "", "", fmt.Errorf("unknown association kind: %s", a.Kind)
	}
}
