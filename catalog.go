package boreas

import (
	"fmt"
	"sort"
	"sync"

	"github.com/telemetrytv/trace"
)

var (
	catalogDebug = trace.Bind("boreas:catalog")
)

// Factory builds a new zero-configuration instance of a class.
type Factory func() (any, error)

// Constructor adapts a plain constructor to a Factory.
func Constructor[T any](fn func() T) Factory {
	return func() (any, error) {
		return fn(), nil
	}
}

// Class is a named, instantiable component together with the annotations it
// declares.
type Class struct {
	Name        string
	Factory     Factory
	annotations map[MarkerKind]Annotation
}

// Annotation returns the class annotation for the given marker kind.
func (c *Class) Annotation(kind MarkerKind) (Annotation, bool) {
	annotation, ok := c.annotations[kind]
	return annotation, ok
}

// Catalog maps class names to classes. It plays the role of a class loader:
// discovery reports class names, and the catalog turns them into instances
// and metadata.
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewCatalog creates a catalog pre-populated with the built-in classes.
func NewCatalog() *Catalog {
	c := NewEmptyCatalog()
	registerBuiltinClasses(c)
	return c
}

// NewEmptyCatalog creates a catalog with no classes registered.
func NewEmptyCatalog() *Catalog {
	return &Catalog{
		classes: map[string]*Class{},
	}
}

// Register adds a class under name. Registering the same name twice fails
// with ErrDuplicateClass.
func (c *Catalog) Register(name string, factory Factory, annotations ...Annotation) error {
	if name == "" || factory == nil {
		return fmt.Errorf("class name and factory are required")
	}

	class := &Class{
		Name:        name,
		Factory:     factory,
		annotations: map[MarkerKind]Annotation{},
	}
	for _, annotation := range annotations {
		class.annotations[annotation.MarkerKind()] = annotation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.classes[name]; exists {
		catalogDebug.Tracef("Rejecting duplicate registration of %s", name)
		return fmt.Errorf("%w: %s", ErrDuplicateClass, name)
	}
	catalogDebug.Tracef("Registering class %s with %d annotations", name, len(annotations))
	c.classes[name] = class
	return nil
}

// MustRegister is Register that panics on error. Useful from init functions.
func (c *Catalog) MustRegister(name string, factory Factory, annotations ...Annotation) {
	if err := c.Register(name, factory, annotations...); err != nil {
		panic(err)
	}
}

// Load looks a class up by name.
func (c *Catalog) Load(name string) (*Class, error) {
	c.mu.RLock()
	class, ok := c.classes[name]
	c.mu.RUnlock()
	if !ok {
		return nil, &LoadError{ClassName: name, Err: ErrUnknownClass}
	}
	return class, nil
}

// Names returns every registered class name in lexical order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)
	return names
}
