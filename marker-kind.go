package boreas

import "fmt"

// MarkerKind identifies the role a discovered class plays once wired into the
// framework. Every kind has exactly one wiring policy.
type MarkerKind int

const (
	HandlerService MarkerKind = iota + 1
	CacheService
	CacheInspectorService
	FilterService
	BroadcasterService
	FactoryService
	ListenerService
	ProcessorService
	WebSocketHandlerService
	WebSocketProtocolService
	WebSocketProcessorService
	InterceptorService
	AsyncSupportService
	AsyncSupportListenerService
	ManagedService
	EndpointMapperService
	ManagedHandlerWrapperService
)

var markerKindNames = map[MarkerKind]string{
	HandlerService:               "HandlerService",
	CacheService:                 "CacheService",
	CacheInspectorService:        "CacheInspectorService",
	FilterService:                "FilterService",
	BroadcasterService:           "BroadcasterService",
	FactoryService:               "FactoryService",
	ListenerService:              "ListenerService",
	ProcessorService:             "ProcessorService",
	WebSocketHandlerService:      "WebSocketHandlerService",
	WebSocketProtocolService:     "WebSocketProtocolService",
	WebSocketProcessorService:    "WebSocketProcessorService",
	InterceptorService:           "InterceptorService",
	AsyncSupportService:          "AsyncSupportService",
	AsyncSupportListenerService:  "AsyncSupportListenerService",
	ManagedService:               "ManagedService",
	EndpointMapperService:        "EndpointMapperService",
	ManagedHandlerWrapperService: "ManagedHandlerWrapperService",
}

// markerKindAliases holds the alternative spellings accepted by
// ParseMarkerKind.
var markerKindAliases = map[string]MarkerKind{
	"BroadcasterCacheService": CacheService,
}

// MarkerKinds returns every marker kind in declaration order.
func MarkerKinds() []MarkerKind {
	kinds := make([]MarkerKind, 0, len(markerKindNames))
	for kind := HandlerService; kind <= ManagedHandlerWrapperService; kind++ {
		kinds = append(kinds, kind)
	}
	return kinds
}

// String returns the canonical name of the marker kind.
func (k MarkerKind) String() string {
	if name, ok := markerKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MarkerKind(%d)", int(k))
}

// IsValid reports whether k is one of the declared marker kinds.
func (k MarkerKind) IsValid() bool {
	_, ok := markerKindNames[k]
	return ok
}

// ParseMarkerKind resolves a marker kind from its canonical name or alias.
func ParseMarkerKind(name string) (MarkerKind, error) {
	for kind, kindName := range markerKindNames {
		if kindName == name {
			return kind, nil
		}
	}
	if kind, ok := markerKindAliases[name]; ok {
		return kind, nil
	}
	return 0, fmt.Errorf("unknown marker kind %q", name)
}
