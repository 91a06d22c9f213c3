package boreas

import (
	"net/http"
	"sync"
)

// Resource is a single suspended or in-flight request as seen by handlers,
// interceptors and event listeners.
type Resource struct {
	Path    string
	Method  string
	Headers http.Header

	mu         sync.Mutex
	listeners  []ResourceEventListener
	attributes map[string]any
}

// NewResource creates a resource for the given method and path.
func NewResource(method, path string) *Resource {
	return &Resource{
		Path:       path,
		Method:     method,
		Headers:    http.Header{},
		attributes: map[string]any{},
	}
}

// AddEventListener attaches a listener to the resource.
func (r *Resource) AddEventListener(listener ResourceEventListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// EventListeners returns the listeners attached so far.
func (r *Resource) EventListeners() []ResourceEventListener {
	r.mu.Lock()
	defer r.mu.Unlock()
	listeners := make([]ResourceEventListener, len(r.listeners))
	copy(listeners, r.listeners)
	return listeners
}

// Notify delivers an event to every attached listener.
func (r *Resource) Notify(event string) {
	for _, listener := range r.EventListeners() {
		listener.OnEvent(r, event)
	}
}

func (r *Resource) SetAttribute(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attributes == nil {
		r.attributes = map[string]any{}
	}
	r.attributes[key] = value
}

func (r *Resource) Attribute(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.attributes[key]
	return value, ok
}
