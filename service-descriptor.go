package boreas

import "fmt"

// ServiceDescriptor is one discovered class, tagged with the marker kind it
// was discovered under. Metadata is resolved lazily from the class's own
// annotation, never from the discovery event, and at most once.
type ServiceDescriptor struct {
	Kind      MarkerKind
	ClassName string

	Path                      string
	BroadcasterClassName      string
	BroadcastFilterClassNames []string
	PropertyAssignments       []Assignment
	InitParameters            []Assignment
	InterceptorClassNames     []string
	BroadcasterCacheClassName string
	SessionSupport            bool
	EventListenerClassNames   []string

	resolved bool
}

// NewServiceDescriptor creates an unresolved descriptor.
func NewServiceDescriptor(kind MarkerKind, className string) *ServiceDescriptor {
	return &ServiceDescriptor{Kind: kind, ClassName: className}
}

// Resolved reports whether metadata has been read into the descriptor.
func (d *ServiceDescriptor) Resolved() bool {
	return d.resolved
}

// ResolveMetadata copies the annotation for the descriptor's marker kind from
// class into the descriptor. Later calls are no-ops.
func (d *ServiceDescriptor) ResolveMetadata(class *Class) error {
	if d.resolved {
		return nil
	}

	annotation, ok := class.Annotation(d.Kind)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrMissingAnnotation, d.Kind, class.Name)
	}

	switch meta := annotation.(type) {
	case HandlerServiceMeta:
		d.Path = orDefault(meta.Path, DefaultPath)
		d.BroadcasterClassName = orDefault(meta.Broadcaster, DefaultBroadcasterClassName)
		d.BroadcastFilterClassNames = meta.BroadcastFilters
		d.PropertyAssignments = toAssignments(meta.Properties)
		d.InitParameters = toAssignments(meta.InitParams)
		d.InterceptorClassNames = meta.Interceptors
		d.BroadcasterCacheClassName = orDefault(meta.BroadcasterCache, DefaultBroadcasterCacheClassName)
		d.SessionSupport = meta.SupportSession

	case ProcessorServiceMeta:
		d.Path = orDefault(meta.Path, DefaultPath)
		d.BroadcasterClassName = orDefault(meta.Broadcaster, DefaultBroadcasterClassName)
		d.BroadcastFilterClassNames = meta.BroadcastFilters
		d.InitParameters = toAssignments(meta.InitParams)
		d.InterceptorClassNames = meta.Interceptors

	case WebSocketHandlerServiceMeta:
		d.Path = orDefault(meta.Path, DefaultPath)
		d.BroadcasterClassName = orDefault(meta.Broadcaster, DefaultBroadcasterClassName)
		d.BroadcastFilterClassNames = meta.BroadcastFilters
		d.BroadcasterCacheClassName = orDefault(meta.BroadcasterCache, DefaultBroadcasterCacheClassName)

	case ManagedServiceMeta:
		d.Path = orDefault(meta.Path, DefaultPath)
		d.EventListenerClassNames = meta.Listeners

	case ManagedHandlerWrapperMeta:
		d.Path = orDefault(meta.Path, DefaultPath)

	default:
		return fmt.Errorf("%w: %s carries unsupported annotation %T", ErrMissingAnnotation, class.Name, annotation)
	}

	d.resolved = true
	return nil
}
