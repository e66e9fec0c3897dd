package resource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rediwo/redi-records/schema"
)

// Catalog holds the compiled resources of an application.
type Catalog struct {
	mu        sync.RWMutex
	registry  *schema.Registry
	resources map[string]*Resource
}

func NewCatalog(registry *schema.Registry) *Catalog {
	return &Catalog{
		registry:  registry,
		resources: make(map[string]*Resource),
	}
}

// Register compiles res and adds it to the catalog.
func (c *Catalog) Register(res *Resource) error {
	if err := res.Compile(c.registry); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.resources[res.Name]; exists {
		return fmt.Errorf("resource %s already registered", res.Name)
	}
	c.resources[res.Name] = res
	return nil
}

func (c *Catalog) Get(name string) (*Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.resources[name]
	if !ok {
		return nil, fmt.Errorf("resource %s not found", name)
	}
	return res, nil
}

// Names returns the registered resource names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.resources))
	for name := range c.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Registry() *schema.Registry {
	return c.registry
}
