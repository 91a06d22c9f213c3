package boreas

import (
	"fmt"
	"sync"
)

// ProcessorAdapter serves requests with a handler class that is only
// instantiated when the first request arrives.
type ProcessorAdapter struct {
	ClassName string

	catalog *Catalog
	once    sync.Once
	target  Handler
	err     error
}

var _ Handler = &ProcessorAdapter{}

// NewProcessorAdapter binds an adapter to className in catalog.
func NewProcessorAdapter(catalog *Catalog, className string) *ProcessorAdapter {
	return &ProcessorAdapter{ClassName: className, catalog: catalog}
}

// OnRequest instantiates the target on first use and delegates to it. A
// target that fails to instantiate fails every request.
func (a *ProcessorAdapter) OnRequest(r *Resource) error {
	a.once.Do(func() {
		a.target, a.err = Instantiate[Handler](a.catalog, a.ClassName)
	})
	if a.err != nil {
		return a.err
	}
	return a.target.OnRequest(r)
}

// ReadyHandler is implemented by managed objects that want to know when a
// resource is ready to receive broadcasts.
type ReadyHandler interface {
	OnReady(r *Resource) error
}

// ManagedHandler adapts an arbitrary object into a Handler. The object serves
// requests if it is a Handler, or is told the resource is ready if it is a
// ReadyHandler.
type ManagedHandler struct {
	Target any
}

var _ Handler = &ManagedHandler{}

func NewManagedHandler(target any) *ManagedHandler {
	return &ManagedHandler{Target: target}
}

func (h *ManagedHandler) OnRequest(r *Resource) error {
	switch target := h.Target.(type) {
	case Handler:
		return target.OnRequest(r)
	case ReadyHandler:
		return target.OnReady(r)
	default:
		return fmt.Errorf("managed object %T cannot serve requests", h.Target)
	}
}
