package boreas

import (
	"github.com/telemetrytv/trace"
)

var (
	chainDebug = trace.Bind("boreas:wiring:chain")
)

// BuildInterceptorChain instantiates and configures the named interceptors in
// order. An interceptor that cannot be instantiated or configured is traced
// and left out; the rest keep their relative order. The result may be empty
// but never nil.
func BuildInterceptorChain(catalog *Catalog, classNames []string, config InterceptorConfig) []Interceptor {
	chain := make([]Interceptor, 0, len(classNames))
	for _, className := range classNames {
		interceptor, err := Instantiate[Interceptor](catalog, className)
		if err != nil {
			chainDebug.Tracef("Skipping interceptor %s: %v", className, err)
			continue
		}
		if err := configureInterceptor(className, interceptor, config); err != nil {
			chainDebug.Tracef("Skipping interceptor %s: %v", className, err)
			continue
		}
		chainDebug.Tracef("Added interceptor %s at position %d", className, len(chain))
		chain = append(chain, interceptor)
	}
	return chain
}

// configureInterceptor runs Configure, turning both errors and panics into a
// *ConfigureError.
func configureInterceptor(className string, interceptor Interceptor, config InterceptorConfig) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ConfigureError{ClassName: className, Err: panicError(r)}
		}
	}()
	if err := interceptor.Configure(config); err != nil {
		return &ConfigureError{ClassName: className, Err: err}
	}
	return nil
}
