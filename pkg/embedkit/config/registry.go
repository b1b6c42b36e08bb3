package config

import (
	"errors"
	"fmt"
	"sync"
)

// WizardDomain is the registry key for WizardUI values.
const WizardDomain = "ui.wizard"

// ErrAlreadyRegistered is returned when a domain is registered twice.
var ErrAlreadyRegistered = errors.New("config: domain already registered")

// Registry stores configuration values by domain key. Values are registered
// once during startup and read-only afterwards.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewRegistry() *Registry {
	return &Registry{values: make(map[string]any)}
}

// Register stores value under domain.
func (r *Registry) Register(domain string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[domain]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, domain)
	}
	r.values[domain] = value
	return nil
}

// Lookup returns the value registered under domain if it has type T.
func Lookup[T any](r *Registry, domain string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[domain].(T)
	return v, ok
}

// Wizard returns the registered WizardUI, or Default when none was registered.
func (r *Registry) Wizard() WizardUI {
	if w, ok := Lookup[WizardUI](r, WizardDomain); ok {
		return w
	}
	return Default()
}
