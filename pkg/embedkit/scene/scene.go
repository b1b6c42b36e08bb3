package scene

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
)

var (
	// ErrCatalogNotFound is returned when no catalog is registered under a name.
	ErrCatalogNotFound = errors.New("scene: catalog not found")

	// ErrSceneNotFound is returned when a catalog has no scene for an identifier.
	ErrSceneNotFound = errors.New("scene: scene not found")
)

// Identifier names a scene within a catalog.
type Identifier string

// Factory creates a new screen instance.
type Factory func() *view.Controller

// Catalog is a named set of scene factories.
type Catalog struct {
	name   string
	scenes map[Identifier]Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog(name string) *Catalog {
	return &Catalog{
		name:   name,
		scenes: make(map[Identifier]Factory),
	}
}

func (c *Catalog) Name() string {
	return c.name
}

// Register adds a scene factory, replacing any previous one with the same identifier.
func (c *Catalog) Register(id Identifier, factory Factory) *Catalog {
	c.scenes[id] = factory
	return c
}

// Has reports whether the catalog can instantiate id.
func (c *Catalog) Has(id Identifier) bool {
	_, ok := c.scenes[id]
	return ok
}

// Identifiers returns the registered identifiers in sorted order.
func (c *Catalog) Identifiers() []Identifier {
	ids := make([]Identifier, 0, len(c.scenes))
	for id := range c.scenes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Instantiate creates a new screen for id.
func (c *Catalog) Instantiate(id Identifier) (*view.Controller, error) {
	factory, ok := c.scenes[id]
	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %q in catalog %q", ErrSceneNotFound, id, c.name)
	}
	controller := factory()
	if controller == nil {
		return nil, fmt.Errorf("scene: factory for %q in catalog %q returned nil", id, c.name)
	}
	return controller, nil
}

// Registry resolves catalogs by name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
}

func NewRegistry() *Registry {
	return &Registry{catalogs: make(map[string]*Catalog)}
}

// Add registers catalog under its name, replacing any previous catalog.
func (r *Registry) Add(catalog *Catalog) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogs[catalog.name] = catalog
	return r
}

// Resolve returns the catalog registered under name.
func (r *Registry) Resolve(name string) (*Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCatalogNotFound, name)
	}
	return c, nil
}
