package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rediwo/redi-records/logger"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "validation failed with %d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&builder, "  %d. %s\n", i+1, err.Error())
	}
	return builder.String()
}

var (
	fieldTypes        = []string{"string", "int", "int64", "float", "bool", "datetime", "json"}
	associationKinds  = []string{"belongs_to", "has_one", "has_many"}
	relationshipKinds = []string{"to_one", "to_many"}
	logLevels         = []string{"debug", "info", "warn", "warning", "error", "none", "off"}
)

// Validate checks that every name the configuration references is
// declared.
func (c *Config) Validate() error {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.LogLevel != "" && !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		add("log_level", "unknown level %q", c.LogLevel)
	}

	models := map[string]bool{}
	for i, m := range c.Models {
		path := fmt.Sprintf("models[%d]", i)
		switch {
		case m.Name == "":
			add(path+".name", "is required")
		case models[m.Name]:
			add(path+".name", "duplicate model %s", m.Name)
		}
		models[m.Name] = true

		primaryKeys := 0
		for j, f := range m.Fields {
			fpath := fmt.Sprintf("%s.fields[%d]", path, j)
			if f.Name == "" {
				add(fpath+".name", "is required")
			}
			if !slices.Contains(fieldTypes, f.Type) {
				add(fpath+".type", "unknown type %q", f.Type)
			}
			if f.PrimaryKey {
				primaryKeys++
			}
		}
		if primaryKeys != 1 {
			add(path+".fields", "model %s needs exactly one primary key, found %d", m.Name, primaryKeys)
		}
	}

	for i, m := range c.Models {
		for j, a := range m.Associations {
			apath := fmt.Sprintf("models[%d].associations[%d]", i, j)
			if a.Name == "" {
				add(apath+".name", "is required")
			}
			if !slices.Contains(associationKinds, a.Kind) {
				add(apath+".kind", "unknown kind %q", a.Kind)
			}
			if !models[a.Model] {
				add(apath+".model", "unknown model %q", a.Model)
			}
		}
	}

	resources := map[string]bool{}
	for i, r := range c.Resources {
		path := fmt.Sprintf("resources[%d]", i)
		switch {
		case r.Name == "":
			add(path+".name", "is required")
		case resources[r.Name]:
			add(path+".name", "duplicate resource %s", r.Name)
		}
		resources[r.Name] = true

		if !models[r.Model] {
			add(path+".model", "unknown model %q", r.Model)
		}
	}

	for i, r := range c.Resources {
		for j, rel := range r.Relationships {
			rpath := fmt.Sprintf("resources[%d].relationships[%d]", i, j)
			if rel.Name == "" {
				add(rpath+".name", "is required")
			}
			if !slices.Contains(relationshipKinds, rel.Kind) {
				add(rpath+".kind", "unknown kind %q", rel.Kind)
			}
			if rel.BelongsTo && rel.Kind == "to_many" {
				add(rpath+".belongs_to", "a to_many relationship cannot belong to its target")
			}
			if !resources[rel.Resource] {
				add(rpath+".resource", "unknown resource %q", rel.Resource)
			}
		}
		for j, f := range r.Filters {
			if f.Name == "" {
				add(fmt.Sprintf("resources[%d].filters[%d].name", i, j), "is required")
			}
		}
	}

	if len(errs) > 0 {
		return &MultiValidationError{Errors: errs}
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() logger.LogLevel {
	return logger.ParseLogLevel(c.LogLevel)
}
