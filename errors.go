package boreas

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownClass indicates a class name missing from the catalog.
	ErrUnknownClass = errors.New("unknown class")
	// ErrNotConstructible indicates a factory that failed or panicked.
	ErrNotConstructible = errors.New("class could not be constructed")
	// ErrWrongCapability indicates an instance that does not implement the
	// interface its marker kind requires.
	ErrWrongCapability = errors.New("class does not provide the required capability")
	// ErrDuplicateClass indicates a second registration under the same name.
	ErrDuplicateClass = errors.New("class already registered")
	// ErrMalformedAssignment indicates an assignment without "=".
	ErrMalformedAssignment = errors.New("malformed assignment")
	// ErrMissingAnnotation indicates a class without the annotation its
	// marker kind requires.
	ErrMissingAnnotation = errors.New("class is missing the annotation for its marker kind")
	// ErrWebSocketNotInitialized indicates a websocket processor requested
	// before InitWebSocket.
	ErrWebSocketNotInitialized = errors.New("websocket support has not been initialized")
)

// LoadError reports a class that could not be loaded or instantiated.
type LoadError struct {
	ClassName string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load class %s: %v", e.ClassName, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConfigureError reports a component whose configuration step failed.
type ConfigureError struct {
	ClassName string
	Err       error
}

func (e *ConfigureError) Error() string {
	return fmt.Sprintf("failed to configure %s: %v", e.ClassName, e.Err)
}

func (e *ConfigureError) Unwrap() error { return e.Err }

// DiscoveryError reports a root location the discoverer could not read. It
// is the only failure that aborts a scan.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to discover components in %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// RegistrationError reports a failed call into the framework configuration
// while wiring a descriptor.
type RegistrationError struct {
	Kind      MarkerKind
	ClassName string
	Err       error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to register %s %s: %v", e.Kind, e.ClassName, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

func panicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", recovered)
}
