// FILE: lixenwraith/params/registry.go
package params

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry associates Go types with the stores that populate them.
// The zero value is not usable; create one with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	stores map[reflect.Type]*BoundStore
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[reflect.Type]*BoundStore)}
}

// Register binds store to the type T. Registering a type twice fails.
func Register[T any](r *Registry, store *BoundStore) error {
	if store == nil {
		return fmt.Errorf("%w: store for %s", ErrNilField, reflect.TypeOf((*T)(nil)).Elem())
	}
	t := reflect.TypeOf((*T)(nil)).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[t]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t)
	}
	r.stores[t] = store
	return nil
}

// MustRegister is like Register but panics on error
func MustRegister[T any](r *Registry, store *BoundStore) {
	if err := Register[T](r, store); err != nil {
		panic(fmt.Sprintf("register failed: %v", err))
	}
}

// Lookup returns the store bound to T.
func Lookup[T any](r *Registry) (*BoundStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stores[reflect.TypeOf((*T)(nil)).Elem()]
	return s, ok
}

// ReaderFor returns the reader bound to T.
func ReaderFor[T any](r *Registry) (ReaderFunc, error) {
	s, ok := Lookup[T](r)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, reflect.TypeOf((*T)(nil)).Elem())
	}
	return s.Reader(), nil
}

// Prefixes returns the sorted prefixes of all registered stores.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.stores))
	prefixes := make([]string, 0, len(r.stores))
	for _, s := range r.stores {
		if !seen[s.prefix] {
			seen[s.prefix] = true
			prefixes = append(prefixes, s.prefix)
		}
	}
	sort.Strings(prefixes)
	return prefixes
}
