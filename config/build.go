package config

import (
	"fmt"

	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
)

// SchemaRegisterer accepts model schemas. It is implemented by every
// database driver.
type SchemaRegisterer interface {
	RegisterSchema(s *schema.Schema) error
}

// Schemas returns the model schemas in declaration order.
func (c *Config) Schemas() []*schema.Schema {
	schemas := make([]*schema.Schema, 0, len(c.Models))
	for _, m := range c.Models {
		s := schema.New(m.Name)
		if m.Table != "" {
			s.WithTableName(m.Table)
		}
		for _, f := range m.Fields {
			s.AddField(schema.Field{
				Name:       f.Name,
				Type:       schema.FieldType(f.Type),
				PrimaryKey: f.PrimaryKey,
				Nullable:   f.Nullable,
				Map:        f.Column,
			})
		}
		for _, a := range m.Associations {
			s.AddAssociation(association(a))
		}
		schemas = append(schemas, s)
	}
	return schemas
}

func association(a AssociationConfig) schema.Association {
	switch a.Kind {
	case "belongs_to":
		return schema.NewBelongsTo(a.Name, a.Model, a.ForeignKey)
	case "has_one":
		return schema.NewHasOne(a.Name, a.Model, a.ForeignKey)
	default:
		return schema.NewHasMany(a.Name, a.Model, a.ForeignKey)
	}
}

// RegisterModels registers every model schema with db.
func (c *Config) RegisterModels(db SchemaRegisterer) error {
	for _, s := range c.Schemas() {
		if err := db.RegisterSchema(s); err != nil {
			return fmt.Errorf("failed to register model %s: %w", s.Name, err)
		}
	}
	return nil
}

// Build returns a catalog holding every resource compiled against the
// models of store. Filters naming a delegate are bound to the function
// registered under that name in delegates.
func (c *Config) Build(store types.Store, delegates map[string]resource.FilterFunc) (*resource.Catalog, error) {
	resources := make(map[string]*resource.Resource, len(c.Resources))
	for _, rc := range c.Resources {
		res := resource.New(rc.Name, rc.Model)
		res.PrimaryKey = rc.PrimaryKey
		if rc.DefaultSort != "" {
			criteria, err := resource.ParseSort(rc.DefaultSort)
			if err != nil {
				return nil, fmt.Errorf("resource %s: invalid default sort: %w", rc.Name, err)
			}
			res.DefaultSort = criteria
		}
		resources[rc.Name] = res
	}

	// Relationships reference each other, so they are wired once every
	// resource exists.
	for _, rc := range c.Resources {
		res := resources[rc.Name]
		for _, relc := range rc.Relationships {
			target, ok := resources[relc.Resource]
			if !ok {
				return nil, fmt.Errorf("resource %s: relationship %s targets unknown resource %s", rc.Name, relc.Name, relc.Resource)
			}
			kind := resource.ToOne
			if relc.Kind == "to_many" {
				kind = resource.ToMany
			}
			res.AddRelationship(&resource.Relationship{
				Name:       relc.Name,
				Kind:       kind,
				BelongsTo:  relc.BelongsTo,
				Resource:   target,
				ForeignKey: relc.ForeignKey,
				Relation:   relc.Relation,
			})
		}

		for _, fc := range rc.Filters {
			if fc.Delegate == "" {
				res.Filter(fc.Name, resource.DefaultPredicate())
				continue
			}
			res.Filter(fc.Name, resource.NamedDelegate(fc.Delegate))
			if fn, ok := delegates[fc.Delegate]; ok {
				res.Delegate(fc.Delegate, fn)
			}
		}
	}

	catalog := resource.NewCatalog(store.Schemas())
	for _, rc := range c.Resources {
		if err := catalog.Register(resources[rc.Name]); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}
