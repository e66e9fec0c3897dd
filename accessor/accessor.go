// Package accessor translates filters, sort criteria, include directives
// and pagination expressed against a resource into store queries.
package accessor

import (
	"context"

	"github.com/rediwo/redi-records/resource"
	"github.com/rediwo/redi-records/types"
)

// RecordAccessor is the operation set every data-access backend supports.
type RecordAccessor interface {
	Find(ctx context.Context, filters resource.Filters, opts Options) ([]types.Record, error)
	Count(ctx context.Context, filters resource.Filters, opts Options) (int64, error)
	// FindByKey fails with a *RecordNotFoundError when no record matches.
	FindByKey(ctx context.Context, key any, opts Options) (types.Record, error)
	// FindByKeys returns the matching records; missing keys are skipped.
	FindByKeys(ctx context.Context, keys []any, opts Options) ([]types.Record, error)
	FindByRelationship(ctx context.Context, inst *resource.Instance, relationship string, opts Options) ([]types.Record, error)
	CountForRelationship(ctx context.Context, inst *resource.Instance, relationship string, opts Options) (int64, error)
}

// Unimplemented answers every operation with ErrNotImplemented. Embed it
// in backends that support only part of RecordAccessor.
type Unimplemented struct{}

var _ RecordAccessor = Unimplemented{}

func (Unimplemented) Find(context.Context, resource.Filters, Options) ([]types.Record, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) Count(context.Context, resource.Filters, Options) (int64, error) {
	return 0, ErrNotImplemented
}

func (Unimplemented) FindByKey(context.Context, any, Options) (types.Record, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) FindByKeys(context.Context, []any, Options) ([]types.Record, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) FindByRelationship(context.Context, *resource.Instance, string, Options) ([]types.Record, error) {
	return nil, ErrNotImplemented
}

func (Unimplemented) CountForRelationship(context.Context, *resource.Instance, string, Options) (int64, error) {
	return 0, ErrNotImplemented
}
