package localtransport

import (
	"sync"

	"github.com/RobertWHurst/boreas"
	"github.com/telemetrytv/trace"
)

var (
	transportLocalDebug         = trace.Bind("boreas:transport:local")
	transportLocalAnnounceDebug = trace.Bind("boreas:transport:local:announce")
)

// LocalTransport delivers wiring announcements to handlers in the same
// process.
type LocalTransport struct {
	mu                     sync.RWMutex
	wiringAnnounceHandlers []func(snapshot *boreas.WiringSnapshot)
}

var _ boreas.Transport = &LocalTransport{}

func New() *LocalTransport {
	transportLocalDebug.Trace("Creating new local transport")
	return &LocalTransport{}
}

func (t *LocalTransport) AnnounceWiring(snapshot *boreas.WiringSnapshot) error {
	transportLocalAnnounceDebug.Tracef("Announcing wiring %s of %s with %d routes",
		snapshot.ID, snapshot.Name, len(snapshot.Routes))

	t.mu.RLock()
	handlers := make([]func(snapshot *boreas.WiringSnapshot), len(t.wiringAnnounceHandlers))
	copy(handlers, t.wiringAnnounceHandlers)
	t.mu.RUnlock()

	transportLocalAnnounceDebug.Tracef("Notifying %d wiring announcement handlers", len(handlers))

	for _, handler := range handlers {
		handler(snapshot)
	}

	transportLocalAnnounceDebug.Trace("Wiring announcement completed")
	return nil
}

func (t *LocalTransport) BindWiringAnnounce(handler func(snapshot *boreas.WiringSnapshot)) error {
	transportLocalAnnounceDebug.Trace("Binding wiring announcement handler")
	t.mu.Lock()
	t.wiringAnnounceHandlers = append(t.wiringAnnounceHandlers, handler)
	handlerCount := len(t.wiringAnnounceHandlers)
	t.mu.Unlock()
	transportLocalAnnounceDebug.Tracef("Now have %d wiring announcement handlers", handlerCount)
	return nil
}

func (t *LocalTransport) UnbindWiringAnnounce() error {
	t.mu.Lock()
	handlerCount := len(t.wiringAnnounceHandlers)
	t.wiringAnnounceHandlers = nil
	t.mu.Unlock()
	transportLocalAnnounceDebug.Tracef("Unbinding %d wiring announcement handlers", handlerCount)
	return nil
}
