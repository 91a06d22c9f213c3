package boreas

var wiringPolicies = map[MarkerKind]WiringPolicy{
	HandlerService:               wireHandlerService,
	CacheService:                 wireCacheService,
	CacheInspectorService:        wireCacheInspectorService,
	FilterService:                wireFilterService,
	BroadcasterService:           wireBroadcasterService,
	FactoryService:               wireFactoryService,
	ListenerService:              wireListenerService,
	ProcessorService:             wireProcessorService,
	WebSocketHandlerService:      wireWebSocketHandlerService,
	WebSocketProtocolService:     wireWebSocketProtocolService,
	WebSocketProcessorService:    wireWebSocketProcessorService,
	InterceptorService:           wireInterceptorService,
	AsyncSupportService:          wireAsyncSupportService,
	AsyncSupportListenerService:  wireAsyncSupportListenerService,
	ManagedService:               wireManagedService,
	EndpointMapperService:        wireEndpointMapperService,
	ManagedHandlerWrapperService: wireManagedHandlerWrapperService,
}

// PolicyFor returns the wiring policy for a marker kind.
func PolicyFor(kind MarkerKind) (WiringPolicy, bool) {
	policy, ok := wiringPolicies[kind]
	return policy, ok
}
