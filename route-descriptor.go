package boreas

import (
	"github.com/RobertWHurst/velaros"
	"github.com/vmihailenco/msgpack/v5"
)

// RouteDescriptor describes one entry of a node's routing table: the path
// pattern, the handler type serving it and the types of its interceptors.
type RouteDescriptor struct {
	Pattern      *velaros.Pattern
	HandlerType  string
	Interceptors []string
}

type routeDescriptorWire struct {
	Pattern      string   `msgpack:"pattern"`
	HandlerType  string   `msgpack:"handlerType"`
	Interceptors []string `msgpack:"interceptors"`
}

// MarshalMsgpack returns the msgpack representation of the route descriptor.
func (r *RouteDescriptor) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(&routeDescriptorWire{
		Pattern:      r.Pattern.String(),
		HandlerType:  r.HandlerType,
		Interceptors: r.Interceptors,
	})
}

// UnmarshalMsgpack parses the msgpack representation of the route descriptor.
func (r *RouteDescriptor) UnmarshalMsgpack(data []byte) error {
	wire := &routeDescriptorWire{}
	if err := msgpack.Unmarshal(data, wire); err != nil {
		return err
	}

	pattern, err := velaros.NewPattern(wire.Pattern)
	if err != nil {
		return err
	}

	r.Pattern = pattern
	r.HandlerType = wire.HandlerType
	r.Interceptors = wire.Interceptors

	return nil
}

// NewRouteDescriptor creates a route descriptor for a path pattern.
func NewRouteDescriptor(patternStr, handlerType string, interceptors ...string) (*RouteDescriptor, error) {
	pattern, err := velaros.NewPattern(patternStr)
	if err != nil {
		return nil, err
	}
	return &RouteDescriptor{Pattern: pattern, HandlerType: handlerType, Interceptors: interceptors}, nil
}

// Matches reports whether path is served by this route.
func (r *RouteDescriptor) Matches(path string) bool {
	_, ok := r.Pattern.Match(path)
	return ok
}
