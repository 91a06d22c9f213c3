package boreas

// listenerInterceptor attaches a fresh instance of every listener class to
// each resource it inspects. It is appended to ManagedService chains.
type listenerInterceptor struct {
	catalog   *Catalog
	listeners []string
}

var _ Interceptor = &listenerInterceptor{}

func (i *listenerInterceptor) Configure(config InterceptorConfig) error { return nil }

func (i *listenerInterceptor) Inspect(r *Resource) Action {
	for _, className := range i.listeners {
		listener, err := Instantiate[ResourceEventListener](i.catalog, className)
		if err != nil {
			wiringDebug.Tracef("Skipping event listener %s for %s: %v", className, r.Path, err)
			continue
		}
		r.AddEventListener(listener)
	}
	return ActionContinue
}

func (i *listenerInterceptor) PostInspect(r *Resource) {}
