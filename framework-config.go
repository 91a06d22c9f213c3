package boreas

import (
	"errors"
	"fmt"
	"sync"

	"github.com/RobertWHurst/velaros"
	"github.com/telemetrytv/trace"
)

var (
	frameworkDebug      = trace.Bind("boreas:framework")
	frameworkRouteDebug = trace.Bind("boreas:framework:route")
)

// AsyncSupportResolver turns an async support class name into an instance.
type AsyncSupportResolver func(className string) (AsyncSupport, error)

// CatalogAsyncSupportResolver resolves async support classes from catalog.
func CatalogAsyncSupportResolver(catalog *Catalog) AsyncSupportResolver {
	return func(className string) (AsyncSupport, error) {
		return Instantiate[AsyncSupport](catalog, className)
	}
}

// HandlerRegistration is one entry of the routing table.
type HandlerRegistration struct {
	Path         string
	Pattern      *velaros.Pattern
	Handler      Handler
	Interceptors []Interceptor
}

// FrameworkConfig is the in-memory runtime configuration. Singleton settings
// are last-write-wins, as are handlers registered twice at the same path.
type FrameworkConfig struct {
	// Name identifies this node when its wiring is announced.
	Name string

	// AsyncSupportResolver resolves the class names passed to
	// ResolveAsyncSupport.
	AsyncSupportResolver AsyncSupportResolver

	mu sync.RWMutex

	defaultBroadcasterClassName string
	broadcasterCacheClassName   string
	broadcastFilters            []string
	initParameterKeys           []string
	initParameters              map[string]string
	sessionSupport              bool

	handlers     map[string]*HandlerRegistration
	handlerOrder []string

	cacheInspectors []CacheInspector
	interceptors    []Interceptor

	webSocketProtocolClassName  string
	webSocketProcessorClassName string
	webSocketProcessor          *DefaultWebSocketProcessor

	asyncSupport          AsyncSupport
	asyncSupportListeners []AsyncSupportListener
	broadcasterFactory    BroadcasterFactory
	broadcastListeners    []BroadcasterListener
	endpointMapper        EndpointMapper
}

var _ Framework = &FrameworkConfig{}
var _ Snapshotter = &FrameworkConfig{}

// NewFrameworkConfig creates an empty configuration that resolves async
// support classes from catalog.
func NewFrameworkConfig(name string, catalog *Catalog) *FrameworkConfig {
	f := &FrameworkConfig{
		Name:           name,
		initParameters: map[string]string{},
		handlers:       map[string]*HandlerRegistration{},
	}
	if catalog != nil {
		f.AsyncSupportResolver = CatalogAsyncSupportResolver(catalog)
	}
	return f
}

func (f *FrameworkConfig) SetDefaultBroadcasterClassName(className string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	frameworkDebug.Tracef("Default broadcaster set to %s", className)
	f.defaultBroadcasterClassName = className
}

func (f *FrameworkConfig) DefaultBroadcasterClassName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.defaultBroadcasterClassName
}

func (f *FrameworkConfig) AddBroadcastFilter(className string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	frameworkDebug.Tracef("Adding broadcast filter %s", className)
	f.broadcastFilters = append(f.broadcastFilters, className)
}

func (f *FrameworkConfig) BroadcastFilters() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.broadcastFilters...)
}

// AddInitParameter sets an init parameter. A repeated key keeps its first
// position and takes the new value.
func (f *FrameworkConfig) AddInitParameter(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	frameworkDebug.Tracef("Adding init parameter %s=%s", key, value)
	if _, exists := f.initParameters[key]; !exists {
		f.initParameterKeys = append(f.initParameterKeys, key)
	}
	f.initParameters[key] = value
}

func (f *FrameworkConfig) InitParameter(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.initParameters[key]
	return value, ok
}

// InitParameters returns a copy of every init parameter.
func (f *FrameworkConfig) InitParameters() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	params := make(map[string]string, len(f.initParameters))
	for key, value := range f.initParameters {
		params[key] = value
	}
	return params
}

// AddHandler maps handler and its interceptor chain to a path pattern.
func (f *FrameworkConfig) AddHandler(path string, handler Handler, interceptors []Interceptor) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}
	pattern, err := velaros.NewPattern(path)
	if err != nil {
		return fmt.Errorf("invalid handler path %q: %w", path, err)
	}
	if interceptors == nil {
		interceptors = []Interceptor{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.handlers[path]; exists {
		frameworkRouteDebug.Tracef("Replacing handler at %s", path)
	} else {
		f.handlerOrder = append(f.handlerOrder, path)
	}
	frameworkRouteDebug.Tracef("Handler %T mapped to %s with %d interceptors", handler, path, len(interceptors))
	f.handlers[path] = &HandlerRegistration{
		Path:         path,
		Pattern:      pattern,
		Handler:      handler,
		Interceptors: interceptors,
	}
	return nil
}

// Handler returns the registration made at exactly path.
func (f *FrameworkConfig) Handler(path string) (*HandlerRegistration, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	registration, ok := f.handlers[path]
	return registration, ok
}

// Handlers returns every registration in the order paths were first mapped.
func (f *FrameworkConfig) Handlers() []*HandlerRegistration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	registrations := make([]*HandlerRegistration, 0, len(f.handlerOrder))
	for _, path := range f.handlerOrder {
		registrations = append(registrations, f.handlers[path])
	}
	return registrations
}

// ResolveHandler finds the registration serving a request path. An endpoint
// mapper, when set, picks among the registered paths; otherwise the path
// patterns are matched in registration order.
func (f *FrameworkConfig) ResolveHandler(requestPath string) (*HandlerRegistration, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.endpointMapper != nil {
		mapped, ok := f.endpointMapper.Map(requestPath, append([]string(nil), f.handlerOrder...))
		if !ok {
			frameworkRouteDebug.Tracef("Endpoint mapper found no handler for %s", requestPath)
			return nil, false
		}
		registration, ok := f.handlers[mapped]
		return registration, ok
	}

	for _, path := range f.handlerOrder {
		registration := f.handlers[path]
		if _, ok := registration.Pattern.Match(requestPath); ok {
			frameworkRouteDebug.Tracef("Resolved %s to %s", requestPath, path)
			return registration, true
		}
	}
	frameworkRouteDebug.Tracef("No handler for %s", requestPath)
	return nil, false
}

// Serve runs a resource through the global interceptors, the handler's own
// interceptors and the handler. Post inspection runs in reverse order for
// every interceptor whose Inspect ran.
func (f *FrameworkConfig) Serve(r *Resource) error {
	registration, ok := f.ResolveHandler(r.Path)
	if !ok {
		return fmt.Errorf("no handler for %s", r.Path)
	}

	chain := append(f.Interceptors(), registration.Interceptors...)
	inspected := make([]Interceptor, 0, len(chain))
	defer func() {
		for i := len(inspected) - 1; i >= 0; i-- {
			inspected[i].PostInspect(r)
		}
	}()

	for _, interceptor := range chain {
		inspected = append(inspected, interceptor)
		if action := interceptor.Inspect(r); action != ActionContinue {
			frameworkRouteDebug.Tracef("Interceptor %T stopped %s", interceptor, r.Path)
			return nil
		}
	}
	return registration.Handler.OnRequest(r)
}

func (f *FrameworkConfig) SetBroadcasterCacheClassName(className string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	frameworkDebug.Tracef("Broadcaster cache set to %s", className)
	f.broadcasterCacheClassName = className
}

func (f *FrameworkConfig) BroadcasterCacheClassName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.broadcasterCacheClassName
}

func (f *FrameworkConfig) SetSessionSupport(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionSupport = enabled
}

func (f *FrameworkConfig) SessionSupport() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sessionSupport
}

func (f *FrameworkConfig) AddCacheInspector(inspector CacheInspector) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cacheInspectors = append(f.cacheInspectors, inspector)
}

func (f *FrameworkConfig) CacheInspectors() []CacheInspector {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]CacheInspector(nil), f.cacheInspectors...)
}

func (f *FrameworkConfig) SetWebSocketProtocolClassName(className string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webSocketProtocolClassName = className
}

func (f *FrameworkConfig) WebSocketProtocolClassName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.webSocketProtocolClassName
}

func (f *FrameworkConfig) SetWebSocketProcessorClassName(className string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webSocketProcessorClassName = className
}

func (f *FrameworkConfig) WebSocketProcessorClassName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.webSocketProcessorClassName
}

// InitWebSocket enables websocket support. It is idempotent.
func (f *FrameworkConfig) InitWebSocket() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.webSocketProcessor != nil {
		return
	}
	frameworkDebug.Trace("Initializing websocket support")
	f.webSocketProcessor = NewWebSocketProcessor()
}

func (f *FrameworkConfig) WebSocketInitialized() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.webSocketProcessor != nil
}

func (f *FrameworkConfig) WebSocketProcessor() (WebSocketProcessor, error) {
	processor, err := f.DefaultWebSocketProcessor()
	if err != nil {
		return nil, err
	}
	return processor, nil
}

// DefaultWebSocketProcessor returns the concrete processor created by
// InitWebSocket.
func (f *FrameworkConfig) DefaultWebSocketProcessor() (*DefaultWebSocketProcessor, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.webSocketProcessor == nil {
		return nil, ErrWebSocketNotInitialized
	}
	return f.webSocketProcessor, nil
}

func (f *FrameworkConfig) AddInterceptor(interceptor Interceptor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	frameworkDebug.Tracef("Adding global interceptor %T", interceptor)
	f.interceptors = append(f.interceptors, interceptor)
}

// Interceptors returns the global interceptors.
func (f *FrameworkConfig) Interceptors() []Interceptor {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Interceptor(nil), f.interceptors...)
}

// ResolveAsyncSupport resolves className with the AsyncSupportResolver and
// installs the result.
func (f *FrameworkConfig) ResolveAsyncSupport(className string) error {
	if f.AsyncSupportResolver == nil {
		return errors.New("no async support resolver configured")
	}
	asyncSupport, err := f.AsyncSupportResolver(className)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	frameworkDebug.Tracef("Async support set to %s", asyncSupport.SupportedType())
	f.asyncSupport = asyncSupport
	return nil
}

func (f *FrameworkConfig) AsyncSupport() AsyncSupport {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.asyncSupport
}

func (f *FrameworkConfig) AddAsyncSupportListener(listener AsyncSupportListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asyncSupportListeners = append(f.asyncSupportListeners, listener)
}

func (f *FrameworkConfig) AsyncSupportListeners() []AsyncSupportListener {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]AsyncSupportListener(nil), f.asyncSupportListeners...)
}

func (f *FrameworkConfig) SetBroadcasterFactory(factory BroadcasterFactory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasterFactory = factory
}

func (f *FrameworkConfig) BroadcasterFactory() BroadcasterFactory {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.broadcasterFactory
}

func (f *FrameworkConfig) AddBroadcastListener(listener BroadcasterListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcastListeners = append(f.broadcastListeners, listener)
}

func (f *FrameworkConfig) BroadcastListeners() []BroadcasterListener {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]BroadcasterListener(nil), f.broadcastListeners...)
}

func (f *FrameworkConfig) SetEndpointMapper(mapper EndpointMapper) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endpointMapper = mapper
}

func (f *FrameworkConfig) EndpointMapper() EndpointMapper {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.endpointMapper
}
