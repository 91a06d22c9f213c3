package boreas

// Class names used when an annotation leaves a field empty, and for the
// broadcaster cache forced by ManagedService.
const (
	DefaultPath                      = "/"
	DefaultBroadcasterClassName      = "boreas.DefaultBroadcaster"
	DefaultBroadcasterCacheClassName = "boreas.DefaultBroadcasterCache"
	HeaderBroadcasterCacheClassName  = "boreas.HeaderBroadcasterCache"
)

// Annotation is class level metadata declared when a class is registered in a
// Catalog. A class carries at most one annotation per marker kind.
type Annotation interface {
	MarkerKind() MarkerKind
}

// HandlerServiceMeta declares a request handler.
type HandlerServiceMeta struct {
	// Path the handler is mapped to. Defaults to "/".
	Path string

	// Broadcaster is the class name of the default broadcaster. Defaults to
	// DefaultBroadcasterClassName.
	Broadcaster string

	// BroadcastFilters are class names appended to the global filter list.
	BroadcastFilters []string

	// Properties are "key=value" assignments applied to the handler instance.
	Properties []string

	// InitParams are "key=value" pairs added to the framework init parameters.
	InitParams []string

	// Interceptors are class names of the interceptors installed in front of
	// the handler, in order.
	Interceptors []string

	// BroadcasterCache is the class name of the broadcaster cache. Defaults to
	// DefaultBroadcasterCacheClassName.
	BroadcasterCache string

	SupportSession bool
}

func (HandlerServiceMeta) MarkerKind() MarkerKind { return HandlerService }

// ProcessorServiceMeta declares a class served through a ProcessorAdapter.
type ProcessorServiceMeta struct {
	Path             string
	Broadcaster      string
	BroadcastFilters []string
	InitParams       []string
	Interceptors     []string
}

func (ProcessorServiceMeta) MarkerKind() MarkerKind { return ProcessorService }

// WebSocketHandlerServiceMeta declares a websocket handler.
type WebSocketHandlerServiceMeta struct {
	Path             string
	Broadcaster      string
	BroadcastFilters []string
	BroadcasterCache string
}

func (WebSocketHandlerServiceMeta) MarkerKind() MarkerKind { return WebSocketHandlerService }

// ManagedServiceMeta declares a managed handler. Listeners are class names of
// ResourceEventListeners attached to every resource the handler inspects.
type ManagedServiceMeta struct {
	Path      string
	Listeners []string
}

func (ManagedServiceMeta) MarkerKind() MarkerKind { return ManagedService }

// ManagedHandlerWrapperMeta declares an arbitrary object served through a
// ManagedHandler.
type ManagedHandlerWrapperMeta struct {
	Path string
}

func (ManagedHandlerWrapperMeta) MarkerKind() MarkerKind { return ManagedHandlerWrapperService }

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
