package schema

import (
	"fmt"
	"strings"

	"github.com/rediwo/redi-records/utils"
)

type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInt      FieldType = "int"
	FieldTypeInt64    FieldType = "int64"
	FieldTypeFloat    FieldType = "float"
	FieldTypeBool     FieldType = "bool"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeJSON     FieldType = "json"
)

type Field struct {
	Name       string
	Type       FieldType
	PrimaryKey bool
	Nullable   bool
	Map        string // Column name mapping
}

// GetColumnName returns the actual database column name for this field
func (f Field) GetColumnName() string {
	if f.Map != "" {
		return f.Map
	}
	return utils.ToSnakeCase(f.Name)
}

// Schema describes one model: the table it lives in, its columns and the
// associations reachable from it.
type Schema struct {
	Name         string
	TableName    string
	Fields       []Field
	Associations []Association
}

func New(name string) *Schema {
	return &Schema{
		Name:      name,
		TableName: utils.TableName(name),
		Fields:    []Field{},
	}
}

func (s *Schema) WithTableName(name string) *Schema {
	s.TableName = name
	return s
}

func (s *Schema) AddField(field Field) *Schema {
	s.Fields = append(s.Fields, field)
	return s
}

func (s *Schema) AddAssociation(association Association) *Schema {
	s.Associations = append(s.Associations, association)
	return s
}

func (s *Schema) GetField(name string) (*Field, error) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("field %s not found", name)
}

// HasColumn reports whether the model declares a field mapped to column.
func (s *Schema) HasColumn(column string) bool {
	for _, f := range s.Fields {
		if f.GetColumnName() == column {
			return true
		}
	}
	return false
}

func (s *Schema) GetPrimaryKey() (*Field, error) {
	for i := range s.Fields {
		if s.Fields[i].PrimaryKey {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("no primary key found")
}

// PrimaryKeyColumn returns the primary key column, falling back to "id".
func (s *Schema) PrimaryKeyColumn() string {
	if pk, err := s.GetPrimaryKey(); err == nil {
		return pk.GetColumnName()
	}
	return "id"
}

func (s *Schema) GetTableName() string {
	return s.TableName
}

// GetAssociation returns the association with exactly this name.
func (s *Schema) GetAssociation(name string) (*Association, error) {
	for i := range s.Associations {
		if s.Associations[i].Name == name {
			return &s.Associations[i], nil
		}
	}
	return nil, fmt.Errorf("association %s not found on model %s", name, s.Name)
}

// FindAssociation matches name case-insensitively against the declared
// associations, in declaration order.
func (s *Schema) FindAssociation(name string) (*Association, bool) {
	for i := range s.Associations {
		if strings.EqualFold(s.Associations[i].Name, name) {
			return &s.Associations[i], true
		}
	}
	return nil, false
}

func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}
	if s.TableName == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema must have at least one field")
	}

	primaryKeys := 0
	for _, field := range s.Fields {
		if field.PrimaryKey {
			primaryKeys++
		}
	}
	if primaryKeys != 1 {
		return fmt.Errorf("schema %s must have exactly one primary key field, found %d", s.Name, primaryKeys)
	}

	seen := make(map[string]bool, len(s.Associations))
	for _, a := range s.Associations {
		if a.Name == "" {
			return fmt.Errorf("association on %s has no name", s.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate association %s on %s", a.Name, s.Name)
		}
		seen[a.Name] = true
		if a.Model == "" {
			return fmt.Errorf("association %s on %s has no target model", a.Name, s.Name)
		}
	}

	return nil
}
