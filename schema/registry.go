package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds model schemas by name. It is safe for concurrent use; once
// populated it is typically only read.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register validates and stores a schema under its model name.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("schema cannot be nil")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[s.Name] = s
	return nil
}

func (r *Registry) Get(modelName string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[modelName]
	if !ok {
		return nil, fmt.Errorf("schema for model '%s' not registered", modelName)
	}
	return s, nil
}

// Models returns the registered model names in sorted order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target resolves the schema an association points at.
func (r *Registry) Target(a *Association) (*Schema, error) {
	target, err := r.Get(a.Model)
	if err != nil {
		return nil, fmt.Errorf("association %s: %w", a.Name, err)
	}
	return target, nil
}

// Validate checks that every association targets a registered model and that
// the key columns exist on the side that must hold them.
func (r *Registry) Validate() error {
	for _, name := range r.Models() {
		owner, _ := r.Get(name)
		for i := range owner.Associations {
			a := &owner.Associations[i]
			target, err := r.Target(a)
			if err != nil {
				return fmt.Errorf("model %s: %w", owner.Name, err)
			}
			ownerCol, targetCol, err := JoinKeys(a, owner, target)
			if err != nil {
				return fmt.Errorf("model %s: %w", owner.Name, err)
			}
			if !owner.HasColumn(ownerCol) {
				return fmt.Errorf("model %s: association %s: column %s not found", owner.Name, a.Name, ownerCol)
			}
			if !target.HasColumn(targetCol) {
				return fmt.Errorf("model %s: association %s: column %s not found on %s", owner.Name, a.Name, targetCol, target.Name)
			}
		}
	}
	return nil
}
