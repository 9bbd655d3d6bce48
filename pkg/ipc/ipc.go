// Package ipc delivers control messages from other installation processes
// (touch and window placement) to listeners addressed by opaque handles.
// The transport itself is external; it only needs to carry a Handle and a
// payload.
package ipc

import (
	"fmt"
	"sync"
)

// Error codes for message delivery
type Error int

const (
	// ErrUnknownHandle is returned by Dispatch for a handle with no listener.
	ErrUnknownHandle Error = iota + 1
	// ErrShortMessage is returned when a payload is smaller than its format.
	ErrShortMessage
	// ErrFrameTooLarge is returned by the frame reader for oversize payloads.
	ErrFrameTooLarge
)

func (e Error) Error() string {
	switch e {
	case ErrUnknownHandle:
		return "unknown listener handle"
	case ErrShortMessage:
		return "short message"
	case ErrFrameTooLarge:
		return "frame too large"
	default:
		return "unknown error"
	}
}

// Handle identifies a registered listener. Zero is never issued.
type Handle uint64

// Listener receives message payloads. The payload is only valid for the
// duration of the call.
type Listener interface {
	Receive(payload []byte) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(payload []byte) error

// Receive calls f.
func (f ListenerFunc) Receive(payload []byte) error {
	return f(payload)
}

// Registry maps handles to listeners, so a transport can carry the handle
// instead of a reference to the listener.
type Registry struct {
	mu        sync.RWMutex
	listeners map[Handle]Listener
	next      Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[Handle]Listener), next: 1}
}

// Register adds l and returns its handle.
func (r *Registry) Register(l Listener) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.next
	r.next++
	r.listeners[h] = l
	return h
}

// Unregister removes the listener behind h. Messages already being
// dispatched to it still complete.
func (r *Registry) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, h)
}

// Lookup returns the listener behind h.
func (r *Registry) Lookup(h Handle) (Listener, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listeners[h]
	return l, ok
}

// Dispatch delivers payload to the listener behind h.
func (r *Registry) Dispatch(h Handle, payload []byte) error {
	l, ok := r.Lookup(h)
	if !ok {
		return fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
	}
	return l.Receive(payload)
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
