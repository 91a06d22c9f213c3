package boreas

import (
	"github.com/telemetrytv/trace"
)

var (
	wiringDebug         = trace.Bind("boreas:wiring")
	wiringPropertyDebug = trace.Bind("boreas:wiring:property")
)

// Wiring is what every wiring policy works against: the catalog classes are
// loaded from and the framework they are registered into.
type Wiring struct {
	Catalog   *Catalog
	Framework Framework
}

// WiringPolicy registers one discovered class into the framework. It returns
// the failure that stopped it; mutations made before the failure stay.
type WiringPolicy func(w *Wiring, d *ServiceDescriptor) error

func (w *Wiring) resolveMetadata(d *ServiceDescriptor) error {
	class, err := w.Catalog.Load(d.ClassName)
	if err != nil {
		return err
	}
	return d.ResolveMetadata(class)
}

func (w *Wiring) registrationError(d *ServiceDescriptor, err error) error {
	return &RegistrationError{Kind: d.Kind, ClassName: d.ClassName, Err: err}
}

func (w *Wiring) applyBroadcaster(d *ServiceDescriptor) {
	w.Framework.SetDefaultBroadcasterClassName(d.BroadcasterClassName)
	for _, filter := range d.BroadcastFilterClassNames {
		w.Framework.AddBroadcastFilter(filter)
	}
}

func (w *Wiring) applyInitParameters(d *ServiceDescriptor) {
	for _, assignment := range d.InitParameters {
		key, value, err := assignment.Split()
		if err != nil {
			wiringDebug.Tracef("Skipping init parameter of %s: %v", d.ClassName, err)
			continue
		}
		w.Framework.AddInitParameter(key, value)
	}
}

// applyProperties runs both the set and the add path for every assignment.
// Either path failing, or the assignment being malformed, only skips that
// one call.
func applyProperties(handler any, d *ServiceDescriptor) {
	for _, assignment := range d.PropertyAssignments {
		key, value, err := assignment.Split()
		if err != nil {
			wiringPropertyDebug.Tracef("Skipping property of %s: %v", d.ClassName, err)
			continue
		}
		if err := SetProperty(handler, key, value); err != nil {
			wiringPropertyDebug.Tracef("Set property %s on %s failed: %v", key, d.ClassName, err)
		}
		if err := AddProperty(handler, key, value); err != nil {
			wiringPropertyDebug.Tracef("Add property %s on %s failed: %v", key, d.ClassName, err)
		}
	}
}

func wireHandlerService(w *Wiring, d *ServiceDescriptor) error {
	handler, err := Instantiate[Handler](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	if err := w.resolveMetadata(d); err != nil {
		return err
	}

	w.applyBroadcaster(d)
	applyProperties(handler, d)
	w.applyInitParameters(d)

	chain := BuildInterceptorChain(w.Catalog, d.InterceptorClassNames, w.Framework)
	if err := w.Framework.AddHandler(d.Path, handler, chain); err != nil {
		return w.registrationError(d, err)
	}

	w.Framework.SetBroadcasterCacheClassName(d.BroadcasterCacheClassName)
	w.Framework.SetSessionSupport(d.SessionSupport)
	return nil
}

func wireCacheService(w *Wiring, d *ServiceDescriptor) error {
	w.Framework.SetBroadcasterCacheClassName(d.ClassName)
	return nil
}

func wireCacheInspectorService(w *Wiring, d *ServiceDescriptor) error {
	inspector, err := Instantiate[CacheInspector](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	w.Framework.AddCacheInspector(inspector)
	return nil
}

func wireProcessorService(w *Wiring, d *ServiceDescriptor) error {
	adapter := NewProcessorAdapter(w.Catalog, d.ClassName)
	if err := w.resolveMetadata(d); err != nil {
		return err
	}

	w.applyBroadcaster(d)
	w.applyInitParameters(d)

	chain := BuildInterceptorChain(w.Catalog, d.InterceptorClassNames, w.Framework)
	if err := w.Framework.AddHandler(d.Path, adapter, chain); err != nil {
		return w.registrationError(d, err)
	}
	return nil
}

func wireFilterService(w *Wiring, d *ServiceDescriptor) error {
	w.Framework.AddBroadcastFilter(d.ClassName)
	return nil
}

func wireBroadcasterService(w *Wiring, d *ServiceDescriptor) error {
	w.Framework.SetDefaultBroadcasterClassName(d.ClassName)
	return nil
}

// wireWebSocketHandlerService initializes websocket support before anything
// else, so the framework stays initialized even when the handler fails.
func wireWebSocketHandlerService(w *Wiring, d *ServiceDescriptor) error {
	w.Framework.InitWebSocket()

	handler, err := Instantiate[WebSocketHandler](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	if err := w.resolveMetadata(d); err != nil {
		return err
	}

	processor, err := w.Framework.WebSocketProcessor()
	if err != nil {
		return w.registrationError(d, err)
	}
	if err := processor.RegisterWebSocketHandler(d.Path, handler); err != nil {
		return w.registrationError(d, err)
	}

	w.applyBroadcaster(d)
	w.Framework.SetBroadcasterCacheClassName(d.BroadcasterCacheClassName)
	return nil
}

func wireWebSocketProtocolService(w *Wiring, d *ServiceDescriptor) error {
	w.Framework.SetWebSocketProtocolClassName(d.ClassName)
	return nil
}

func wireWebSocketProcessorService(w *Wiring, d *ServiceDescriptor) error {
	w.Framework.SetWebSocketProcessorClassName(d.ClassName)
	return nil
}

func wireInterceptorService(w *Wiring, d *ServiceDescriptor) error {
	interceptor, err := Instantiate[Interceptor](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	if err := configureInterceptor(d.ClassName, interceptor, w.Framework); err != nil {
		return err
	}
	w.Framework.AddInterceptor(interceptor)
	return nil
}

func wireAsyncSupportService(w *Wiring, d *ServiceDescriptor) error {
	if err := w.Framework.ResolveAsyncSupport(d.ClassName); err != nil {
		return w.registrationError(d, err)
	}
	return nil
}

func wireAsyncSupportListenerService(w *Wiring, d *ServiceDescriptor) error {
	listener, err := Instantiate[AsyncSupportListener](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	w.Framework.AddAsyncSupportListener(listener)
	return nil
}

func wireFactoryService(w *Wiring, d *ServiceDescriptor) error {
	factory, err := Instantiate[BroadcasterFactory](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	w.Framework.SetBroadcasterFactory(factory)
	return nil
}

func wireListenerService(w *Wiring, d *ServiceDescriptor) error {
	listener, err := Instantiate[BroadcasterListener](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	w.Framework.AddBroadcastListener(listener)
	return nil
}

// wireManagedService installs the handler behind the fixed lifecycle
// interceptors plus one interceptor attaching the declared event listeners.
func wireManagedService(w *Wiring, d *ServiceDescriptor) error {
	handler, err := Instantiate[Handler](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	if err := w.resolveMetadata(d); err != nil {
		return err
	}

	chain := newManagedServiceChain(w.Framework)
	listeners := &listenerInterceptor{
		catalog:   w.Catalog,
		listeners: append([]string(nil), d.EventListenerClassNames...),
	}
	if err := configureInterceptor(d.ClassName, listeners, w.Framework); err != nil {
		wiringDebug.Tracef("Listener interceptor for %s not installed: %v", d.ClassName, err)
	} else {
		chain = append(chain, listeners)
	}

	if err := w.Framework.AddHandler(d.Path, handler, chain); err != nil {
		return w.registrationError(d, err)
	}
	w.Framework.SetBroadcasterCacheClassName(HeaderBroadcasterCacheClassName)
	return nil
}

func wireEndpointMapperService(w *Wiring, d *ServiceDescriptor) error {
	mapper, err := Instantiate[EndpointMapper](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	w.Framework.SetEndpointMapper(mapper)
	return nil
}

// wireManagedHandlerWrapperService builds the class twice. The first
// instance is served; the second is only built before the metadata is read.
func wireManagedHandlerWrapperService(w *Wiring, d *ServiceDescriptor) error {
	served, err := Instantiate[any](w.Catalog, d.ClassName)
	if err != nil {
		return err
	}
	if _, err := Instantiate[any](w.Catalog, d.ClassName); err != nil {
		return err
	}
	if err := w.resolveMetadata(d); err != nil {
		return err
	}

	if err := w.Framework.AddHandler(d.Path, NewManagedHandler(served), []Interceptor{}); err != nil {
		return w.registrationError(d, err)
	}
	return nil
}
