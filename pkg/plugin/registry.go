package plugin

import "sync"

// Handle is an opaque reference to a registered Instance. A transport can
// carry it instead of a pointer; zero is never issued.
type Handle uintptr

// Instances maps handles to live instances.
type Instances struct {
	mu     sync.RWMutex
	byID   map[Handle]*Instance
	nextID Handle
}

// NewInstances creates an empty handle table.
func NewInstances() *Instances {
	return &Instances{
		byID:   make(map[Handle]*Instance),
		nextID: 1,
	}
}

// Register stores inst and returns its handle
func (r *Instances) Register(inst *Instance) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.nextID
	r.nextID++
	r.byID[h] = inst
	return h
}

// Unregister removes the instance behind h
func (r *Instances) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, h)
}

// Lookup returns the instance behind h, or nil
func (r *Instances) Lookup(h Handle) *Instance {
	if h == 0 {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[h]
}

// Len returns the number of registered instances
func (r *Instances) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
