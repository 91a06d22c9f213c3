package boreas

import "fmt"

// Instantiate loads className from the catalog, builds an instance and checks
// that it implements T. Every failure, including a panicking factory, comes
// back as a *LoadError.
func Instantiate[T any](catalog *Catalog, className string) (T, error) {
	var zero T

	class, err := catalog.Load(className)
	if err != nil {
		return zero, err
	}

	instance, err := construct(class)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &LoadError{
			ClassName: className,
			Err:       fmt.Errorf("%w: %T is not a %s", ErrWrongCapability, instance, capabilityName[T]()),
		}
	}
	return typed, nil
}

func construct(class *Class) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = &LoadError{ClassName: class.Name, Err: fmt.Errorf("%w: panic: %v", ErrNotConstructible, r)}
		}
	}()

	instance, err = class.Factory()
	if err != nil {
		return nil, &LoadError{ClassName: class.Name, Err: fmt.Errorf("%w: %w", ErrNotConstructible, err)}
	}
	if instance == nil {
		return nil, &LoadError{ClassName: class.Name, Err: fmt.Errorf("%w: factory returned nil", ErrNotConstructible)}
	}
	return instance, nil
}

func capabilityName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
