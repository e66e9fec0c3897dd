package query

import (
	"context"
	"fmt"

	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
)

// includeLoader preloads associations with one IN query per association and
// nesting level.
type includeLoader struct {
	store *Store
}

func newIncludeLoader(store *Store) *includeLoader {
	return &includeLoader{store: store}
}

func (l *includeLoader) load(ctx context.Context, owner *schema.Schema, records []types.Record, tree types.IncludeTree) error {
	for _, name := range tree.Names() {
		if err := l.loadAssociation(ctx, owner, records, name, tree[name]); err != nil {
			return err
		}
	}
	return nil
}

func (l *includeLoader) loadAssociation(ctx context.Context, owner *schema.Schema, records []types.Record, name string, nested types.IncludeTree) error {
	assoc, ok := owner.FindAssociation(name)
	if !ok {
		return fmt.Errorf("%w: %s on model %s", ErrAssociationNotFound, name, owner.Name)
	}

	target, err := l.store.Schemas().Target(assoc)
	if err != nil {
		return err
	}

	ownerColumn, targetColumn, err := schema.JoinKeys(assoc, owner, target)
	if err != nil {
		return err
	}

	keys := distinctKeys(records, ownerColumn)

	var children []types.Record
	if len(keys) > 0 {
		rel := newRelation(l.store, target).
			Where(types.Eq{Column: targetColumn, Value: keys}).
			Order(target.PrimaryKeyColumn(), types.ASC)
		if !nested.Empty() {
			rel = rel.Includes(nested, types.IncludePreload)
		}
		children, err = rel.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load association %s: %w", assoc.Name, err)
		}
	}

	grouped := make(map[string][]types.Record, len(children))
	for _, child := range children {
		k := keyOf(child[targetColumn])
		grouped[k] = append(grouped[k], child)
	}

	for _, rec := range records {
		matches := grouped[keyOf(rec[ownerColumn])]
		if rec[ownerColumn] == nil {
			matches = nil
		}
		if assoc.IsCollection() {
			if matches == nil {
				matches = []types.Record{}
			}
			rec[assoc.Name] = matches
			continue
		}
		if len(matches) > 0 {
			rec[assoc.Name] = matches[0]
		} else {
			rec[assoc.Name] = nil
		}
	}

	return nil
}

// distinctKeys returns the non-nil values of column in first-seen order.
func distinctKeys(records []types.Record, column string) []any {
	seen := make(map[string]bool, len(records))
	keys := make([]any, 0, len(records))
	for _, rec := range records {
		v := rec[column]
		if v == nil {
			continue
		}
		k := keyOf(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, v)
	}
	return keys
}

// keyOf normalizes key values that drivers may return with different Go
// types for the same column (int64 vs string).
func keyOf(v any) string {
	return fmt.Sprint(v)
}
