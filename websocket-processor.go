package boreas

import (
	"fmt"
	"sync"

	"github.com/RobertWHurst/velaros"
	"github.com/coder/websocket"
	"github.com/telemetrytv/trace"
)

var (
	websocketDebug = trace.Bind("boreas:websocket")
)

type websocketRoute struct {
	pattern *velaros.Pattern
	handler WebSocketHandler
}

// DefaultWebSocketProcessor routes websocket frames to the handler whose path
// pattern matches the socket's path. Handlers are matched in registration
// order; registering the same path again replaces the earlier handler.
type DefaultWebSocketProcessor struct {
	mu     sync.RWMutex
	routes []*websocketRoute
}

var _ WebSocketProcessor = &DefaultWebSocketProcessor{}

func NewWebSocketProcessor() *DefaultWebSocketProcessor {
	return &DefaultWebSocketProcessor{}
}

// RegisterWebSocketHandler maps handler to the path pattern.
func (p *DefaultWebSocketProcessor) RegisterWebSocketHandler(path string, handler WebSocketHandler) error {
	pattern, err := velaros.NewPattern(path)
	if err != nil {
		return fmt.Errorf("invalid websocket path %q: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, route := range p.routes {
		if route.pattern.String() == pattern.String() {
			websocketDebug.Tracef("Replacing websocket handler at %s", path)
			route.handler = handler
			return nil
		}
	}
	websocketDebug.Tracef("Registering websocket handler at %s", path)
	p.routes = append(p.routes, &websocketRoute{pattern: pattern, handler: handler})
	return nil
}

// Handler returns the handler serving path.
func (p *DefaultWebSocketProcessor) Handler(path string) (WebSocketHandler, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, route := range p.routes {
		if _, ok := route.pattern.Match(path); ok {
			return route.handler, true
		}
	}
	return nil, false
}

// Dispatch delivers a frame received on path to its handler.
func (p *DefaultWebSocketProcessor) Dispatch(path string, msgType websocket.MessageType, data []byte) error {
	handler, ok := p.Handler(path)
	if !ok {
		websocketDebug.Tracef("No websocket handler for %s, dropping %d bytes", path, len(data))
		return fmt.Errorf("no websocket handler for %s", path)
	}
	websocketDebug.Tracef("Dispatching %v frame of %d bytes to %s", msgType, len(data), path)
	return handler.OnMessage(msgType, data)
}

// Close tells the handler serving path that its socket closed.
func (p *DefaultWebSocketProcessor) Close(path string, status websocket.StatusCode, reason string) {
	handler, ok := p.Handler(path)
	if !ok {
		return
	}
	websocketDebug.Tracef("Closing websocket at %s (status: %d, reason: %s)", path, status, reason)
	handler.OnClose(status, reason)
}

// Paths returns the registered path patterns in registration order.
func (p *DefaultWebSocketProcessor) Paths() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	paths := make([]string, len(p.routes))
	for i, route := range p.routes {
		paths[i] = route.pattern.String()
	}
	return paths
}
