package boreas

import (
	"fmt"
	"time"

	"github.com/RobertWHurst/velaros"
)

// WiringSnapshot is the announceable summary of a node's wiring.
type WiringSnapshot struct {
	ID                          string             `msgpack:"id"`
	Name                        string             `msgpack:"name"`
	CreatedAt                   time.Time          `msgpack:"createdAt"`
	DefaultBroadcasterClassName string             `msgpack:"defaultBroadcaster"`
	BroadcasterCacheClassName   string             `msgpack:"broadcasterCache"`
	BroadcastFilters            []string           `msgpack:"broadcastFilters"`
	InitParameters              map[string]string  `msgpack:"initParameters"`
	SessionSupport              bool               `msgpack:"sessionSupport"`
	WebSocketProtocolClassName  string             `msgpack:"webSocketProtocol"`
	WebSocketProcessorClassName string             `msgpack:"webSocketProcessor"`
	WebSocketPaths              []string           `msgpack:"webSocketPaths"`
	Routes                      []*RouteDescriptor `msgpack:"routes"`
}

// ResolveRoute returns the first route serving path.
func (s *WiringSnapshot) ResolveRoute(path string) (*RouteDescriptor, bool) {
	for _, route := range s.Routes {
		if route.Matches(path) {
			return route, true
		}
	}
	return nil, false
}

// ResolveWebSocketPath returns the first websocket path pattern serving path.
// Patterns that fail to parse never match.
func (s *WiringSnapshot) ResolveWebSocketPath(path string) (string, bool) {
	for _, patternStr := range s.WebSocketPaths {
		pattern, err := velaros.NewPattern(patternStr)
		if err != nil {
			continue
		}
		if _, ok := pattern.Match(path); ok {
			return patternStr, true
		}
	}
	return "", false
}

// Snapshot captures the current wiring.
func (f *FrameworkConfig) Snapshot() *WiringSnapshot {
	registrations := f.Handlers()
	routes := make([]*RouteDescriptor, 0, len(registrations))
	for _, registration := range registrations {
		interceptors := make([]string, len(registration.Interceptors))
		for i, interceptor := range registration.Interceptors {
			interceptors[i] = fmt.Sprintf("%T", interceptor)
		}
		routes = append(routes, &RouteDescriptor{
			Pattern:      registration.Pattern,
			HandlerType:  fmt.Sprintf("%T", registration.Handler),
			Interceptors: interceptors,
		})
	}

	var webSocketPaths []string
	if processor, err := f.DefaultWebSocketProcessor(); err == nil {
		webSocketPaths = processor.Paths()
	}

	return &WiringSnapshot{
		ID:                          generateID(f.Name),
		Name:                        f.Name,
		CreatedAt:                   time.Now(),
		DefaultBroadcasterClassName: f.DefaultBroadcasterClassName(),
		BroadcasterCacheClassName:   f.BroadcasterCacheClassName(),
		BroadcastFilters:            f.BroadcastFilters(),
		InitParameters:              f.InitParameters(),
		SessionSupport:              f.SessionSupport(),
		WebSocketProtocolClassName:  f.WebSocketProtocolClassName(),
		WebSocketProcessorClassName: f.WebSocketProcessorClassName(),
		WebSocketPaths:              webSocketPaths,
		Routes:                      routes,
	}
}
