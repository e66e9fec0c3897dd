package accessor

import (
	"github.com/rediwo/redi-records/logger"
	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/types"
)

// Options carries the per-request inputs of an operation. Each stage reads
// only the fields it needs.
type Options struct {
	Context           resource.Context
	Paginator         types.Paginator
	SortCriteria      []resource.SortCriterion
	IncludeDirectives *resource.IncludeDirectives
	// Filters scope the records of FindByRelationship and
	// CountForRelationship.
	Filters resource.Filters
}

// OptionKey names a field of Options.
type OptionKey int

const (
	OptPaginator OptionKey = iota
	OptSortCriteria
	OptIncludeDirectives
	OptFilters
)

// Without returns a copy of o with the named fields cleared.
func (o Options) Without(keys ...OptionKey) Options {
	for _, k := range keys {
		switch k {
		case OptPaginator:
			o.Paginator = nil
		case OptSortCriteria:
			o.SortCriteria = nil
		case OptIncludeDirectives:
			o.IncludeDirectives = nil
		case OptFilters:
			o.Filters = nil
		}
	}
	return o
}

// Option configures a RelationalRecordAccessor.
type Option func(*RelationalRecordAccessor)

func WithLogger(l logger.Logger) Option {
	return func(a *RelationalRecordAccessor) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithStrictFilters rejects filters that are neither relationships,
// declared filters nor columns of the model.
func WithStrictFilters(strict bool) Option {
	return func(a *RelationalRecordAccessor) {
		a.strictFilters = strict
	}
}
