package boreas

import "github.com/coder/websocket"

// Handler serves requests for the path it is registered at.
type Handler interface {
	OnRequest(r *Resource) error
}

// Action tells the framework whether to keep running the interceptor chain.
type Action int

const (
	ActionContinue Action = iota
	ActionSuspend
	ActionCancel
)

// InterceptorConfig is the configuration context handed to interceptors
// when they are configured.
type InterceptorConfig interface {
	InitParameter(key string) (string, bool)
}

// Interceptor runs around a handler for every resource the handler serves.
type Interceptor interface {
	Configure(config InterceptorConfig) error
	Inspect(r *Resource) Action
	PostInspect(r *Resource)
}

// ResourceEventListener receives lifecycle events for a single resource.
type ResourceEventListener interface {
	OnEvent(r *Resource, event string)
}

// CacheInspector decides whether a broadcast message may be cached.
type CacheInspector interface {
	Inspect(message any) bool
}

// Broadcaster distributes messages to the resources subscribed to it.
type Broadcaster interface {
	ID() string
	Broadcast(message any) error
}

// BroadcasterFactory creates and looks up broadcasters.
type BroadcasterFactory interface {
	Lookup(id string, create bool) (Broadcaster, error)
}

// BroadcasterListener is notified of broadcaster lifecycle events.
type BroadcasterListener interface {
	OnPostCreate(b Broadcaster)
	OnComplete(b Broadcaster)
}

// AsyncSupport is the container integration used to suspend and resume
// resources.
type AsyncSupport interface {
	SupportedType() string
}

// AsyncSupportListener is notified when async support suspends or resumes a
// resource.
type AsyncSupportListener interface {
	OnSuspend(r *Resource)
	OnResume(r *Resource)
}

// EndpointMapper maps a request path onto one of the registered paths.
type EndpointMapper interface {
	Map(requestPath string, registeredPaths []string) (string, bool)
}

// WebSocketHandler receives websocket frames for the path it is registered at.
type WebSocketHandler interface {
	OnMessage(msgType websocket.MessageType, data []byte) error
	OnClose(status websocket.StatusCode, reason string)
}

// WebSocketProcessor routes websocket frames to WebSocketHandlers by path.
type WebSocketProcessor interface {
	RegisterWebSocketHandler(path string, handler WebSocketHandler) error
}

// PropertySetter lets a handler take over the "set" half of property
// assignment.
type PropertySetter interface {
	SetProperty(key, value string) error
}

// PropertyAdder receives the "add" half of property assignment. Handlers
// that do not implement it ignore the add call.
type PropertyAdder interface {
	AddProperty(key, value string) error
}
