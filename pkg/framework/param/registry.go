package param

import (
	"fmt"
	"sync"
)

// ErrDuplicate is returned by Add for a repeated parameter ID or name.
const ErrDuplicate = registryError("duplicate parameter")

type registryError string

func (e registryError) Error() string { return string(e) }

// Registry holds a plugin's parameters in declaration order, addressable
// by ID, name or index. Lookups take a read lock; the render thread
// should hold on to *Parameter values instead (see Automator).
type Registry struct {
	mu     sync.RWMutex
	params map[uint32]*Parameter
	byName map[string]*Parameter
	order  []*Parameter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		byName: make(map[string]*Parameter),
	}
}

// Add registers params. If any ID or name is already taken, or repeated
// within params, nothing is added.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(map[uint32]bool, len(params))
	names := make(map[string]bool, len(params))
	for _, p := range params {
		if _, ok := r.params[p.ID]; ok || ids[p.ID] {
			return fmt.Errorf("parameter ID %d: %w", p.ID, ErrDuplicate)
		}
		if _, ok := r.byName[p.Name]; ok || names[p.Name] {
			return fmt.Errorf("parameter name %q: %w", p.Name, ErrDuplicate)
		}
		ids[p.ID] = true
		names[p.Name] = true
	}

	for _, p := range params {
		r.params[p.ID] = p
		r.byName[p.Name] = p
		r.order = append(r.order, p)
	}
	return nil
}

// Get returns the parameter with id, or nil.
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.params[id]
}

// GetByName returns the parameter called name, e.g. "location", or nil.
func (r *Registry) GetByName(name string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// GetByIndex returns the index'th declared parameter, or nil.
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || int(index) >= len(r.order) {
		return nil
	}
	return r.order[index]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.order))
}

// All returns a copy of the parameters in declaration order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Parameter(nil), r.order...)
}

// ResetAll restores every parameter to its default value.
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
