package boreas

// Framework is the runtime configuration the wiring policies mutate. The
// scan is its only writer while it runs. FrameworkConfig is the in-memory
// implementation; hosts with their own runtime can implement it directly.
type Framework interface {
	InterceptorConfig

	SetDefaultBroadcasterClassName(className string)
	AddBroadcastFilter(className string)
	AddInitParameter(key, value string)
	AddHandler(path string, handler Handler, interceptors []Interceptor) error
	SetBroadcasterCacheClassName(className string)
	SetSessionSupport(enabled bool)
	AddCacheInspector(inspector CacheInspector)

	SetWebSocketProtocolClassName(className string)
	SetWebSocketProcessorClassName(className string)
	InitWebSocket()
	WebSocketProcessor() (WebSocketProcessor, error)

	AddInterceptor(interceptor Interceptor)
	ResolveAsyncSupport(className string) error
	AddAsyncSupportListener(listener AsyncSupportListener)
	SetBroadcasterFactory(factory BroadcasterFactory)
	AddBroadcastListener(listener BroadcasterListener)
	SetEndpointMapper(mapper EndpointMapper)
}

// Snapshotter is implemented by frameworks able to describe their wiring for
// announcement to other nodes.
type Snapshotter interface {
	Snapshot() *WiringSnapshot
}
