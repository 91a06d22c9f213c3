package boreas

import (
	"net/http"
	"strconv"
	"time"

	"github.com/telemetrytv/trace"
)

var (
	heartbeatDebug = trace.Bind("boreas:interceptor:heartbeat")
)

// Class names of the built-in interceptors installed in front of every
// ManagedService handler, in installation order.
const (
	ResourceLifecycleInterceptorClassName = "boreas.ResourceLifecycleInterceptor"
	BroadcastOnPostInterceptorClassName   = "boreas.BroadcastOnPostInterceptor"
	TrackMessageSizeInterceptorClassName  = "boreas.TrackMessageSizeInterceptor"
	HeartbeatInterceptorClassName         = "boreas.HeartbeatInterceptor"

	BlockingAsyncSupportClassName = "boreas.BlockingAsyncSupport"
)

// ManagedServiceInterceptors lists the interceptors every ManagedService
// handler receives ahead of its listener interceptor.
var ManagedServiceInterceptors = []string{
	ResourceLifecycleInterceptorClassName,
	BroadcastOnPostInterceptorClassName,
	TrackMessageSizeInterceptorClassName,
	HeartbeatInterceptorClassName,
}

// Resource attributes and headers written by the built-in interceptors.
const (
	SuspendedAttribute         = "boreas.suspended"
	BroadcastOnPostAttribute   = "boreas.broadcastOnPost"
	TrackMessageSizeHeader     = "X-Boreas-Track-Message-Size"
	HeartbeatHeader            = "X-Heartbeat-Server"
	HeartbeatIntervalParameter = "boreas.heartbeat.interval"
	DefaultHeartbeatInterval   = 60 * time.Second
)

// newManagedServiceChain builds the fixed ManagedService interceptors. They
// are constructed directly so the chain never depends on what a catalog holds.
func newManagedServiceChain(config InterceptorConfig) []Interceptor {
	chain := []Interceptor{
		&ResourceLifecycleInterceptor{},
		&BroadcastOnPostInterceptor{},
		&TrackMessageSizeInterceptor{},
		&HeartbeatInterceptor{},
	}
	for i, interceptor := range chain {
		if err := configureInterceptor(ManagedServiceInterceptors[i], interceptor, config); err != nil {
			chainDebug.Tracef("Keeping %s unconfigured: %v", ManagedServiceInterceptors[i], err)
		}
	}
	return chain
}

func registerBuiltinClasses(c *Catalog) {
	c.MustRegister(ResourceLifecycleInterceptorClassName, Constructor(func() *ResourceLifecycleInterceptor {
		return &ResourceLifecycleInterceptor{}
	}))
	c.MustRegister(BroadcastOnPostInterceptorClassName, Constructor(func() *BroadcastOnPostInterceptor {
		return &BroadcastOnPostInterceptor{}
	}))
	c.MustRegister(TrackMessageSizeInterceptorClassName, Constructor(func() *TrackMessageSizeInterceptor {
		return &TrackMessageSizeInterceptor{}
	}))
	c.MustRegister(HeartbeatInterceptorClassName, Constructor(func() *HeartbeatInterceptor {
		return &HeartbeatInterceptor{}
	}))
	c.MustRegister(BlockingAsyncSupportClassName, Constructor(func() *BlockingAsyncSupport {
		return &BlockingAsyncSupport{}
	}))
}

// ResourceLifecycleInterceptor suspends GET resources once the handler has
// run and tells their listeners.
type ResourceLifecycleInterceptor struct{}

var _ Interceptor = &ResourceLifecycleInterceptor{}

func (i *ResourceLifecycleInterceptor) Configure(config InterceptorConfig) error { return nil }

func (i *ResourceLifecycleInterceptor) Inspect(r *Resource) Action { return ActionContinue }

func (i *ResourceLifecycleInterceptor) PostInspect(r *Resource) {
	if r.Method != http.MethodGet {
		return
	}
	r.SetAttribute(SuspendedAttribute, true)
	r.Notify("suspend")
}

// BroadcastOnPostInterceptor marks POST bodies for broadcast.
type BroadcastOnPostInterceptor struct{}

var _ Interceptor = &BroadcastOnPostInterceptor{}

func (i *BroadcastOnPostInterceptor) Configure(config InterceptorConfig) error { return nil }

func (i *BroadcastOnPostInterceptor) Inspect(r *Resource) Action {
	if r.Method == http.MethodPost {
		r.SetAttribute(BroadcastOnPostAttribute, true)
	}
	return ActionContinue
}

func (i *BroadcastOnPostInterceptor) PostInspect(r *Resource) {}

// TrackMessageSizeInterceptor asks clients to expect length-prefixed messages.
type TrackMessageSizeInterceptor struct{}

var _ Interceptor = &TrackMessageSizeInterceptor{}

func (i *TrackMessageSizeInterceptor) Configure(config InterceptorConfig) error { return nil }

func (i *TrackMessageSizeInterceptor) Inspect(r *Resource) Action {
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	r.Headers.Set(TrackMessageSizeHeader, "true")
	return ActionContinue
}

func (i *TrackMessageSizeInterceptor) PostInspect(r *Resource) {}

// HeartbeatInterceptor advertises the server heartbeat interval. The interval
// comes from the boreas.heartbeat.interval init parameter, either a duration
// such as "30s" or a whole number of seconds. Anything else falls back to
// DefaultHeartbeatInterval.
type HeartbeatInterceptor struct {
	Interval time.Duration
}

var _ Interceptor = &HeartbeatInterceptor{}

func (i *HeartbeatInterceptor) Configure(config InterceptorConfig) error {
	i.Interval = DefaultHeartbeatInterval
	raw, ok := config.InitParameter(HeartbeatIntervalParameter)
	if !ok {
		return nil
	}
	interval, ok := parseHeartbeatInterval(raw)
	if !ok {
		heartbeatDebug.Tracef("Ignoring %s=%q, using %s", HeartbeatIntervalParameter, raw, DefaultHeartbeatInterval)
		return nil
	}
	i.Interval = interval
	return nil
}

func parseHeartbeatInterval(raw string) (time.Duration, bool) {
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, seconds > 0
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return interval, interval > 0
}

func (i *HeartbeatInterceptor) Inspect(r *Resource) Action {
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	r.Headers.Set(HeartbeatHeader, strconv.FormatInt(i.Interval.Milliseconds(), 10))
	return ActionContinue
}

func (i *HeartbeatInterceptor) PostInspect(r *Resource) {}

// BlockingAsyncSupport holds each request's goroutine for as long as the
// resource is suspended.
type BlockingAsyncSupport struct{}

func (s *BlockingAsyncSupport) SupportedType() string { return "blocking-io" }
