package boreas

import (
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
)

type fieldHandler struct {
	Name    string
	Retries int
	Timeout time.Duration

	requests []*Resource
}

func (h *fieldHandler) OnRequest(r *Resource) error {
	h.requests = append(h.requests, r)
	return nil
}

type propertyCall struct {
	Op    string
	Key   string
	Value string
}

type propertyHandler struct {
	calls  []propertyCall
	setErr error
}

func (h *propertyHandler) OnRequest(r *Resource) error { return nil }

func (h *propertyHandler) SetProperty(key, value string) error {
	h.calls = append(h.calls, propertyCall{Op: "set", Key: key, Value: value})
	return h.setErr
}

func (h *propertyHandler) AddProperty(key, value string) error {
	h.calls = append(h.calls, propertyCall{Op: "add", Key: key, Value: value})
	return nil
}

type recordingInterceptor struct {
	name         string
	log          *[]string
	configureErr error
	action       Action
	configured   InterceptorConfig
}

func (i *recordingInterceptor) Configure(config InterceptorConfig) error {
	i.configured = config
	return i.configureErr
}

func (i *recordingInterceptor) Inspect(r *Resource) Action {
	if i.log != nil {
		*i.log = append(*i.log, "inspect:"+i.name)
	}
	return i.action
}

func (i *recordingInterceptor) PostInspect(r *Resource) {
	if i.log != nil {
		*i.log = append(*i.log, "post:"+i.name)
	}
}

type panickingInterceptor struct{}

func (i *panickingInterceptor) Configure(config InterceptorConfig) error { panic("bad config") }

func (i *panickingInterceptor) Inspect(r *Resource) Action { return ActionContinue }

func (i *panickingInterceptor) PostInspect(r *Resource) {}

type recordingWebSocketHandler struct {
	messages     [][]byte
	messageTypes []websocket.MessageType
	closeStatus  websocket.StatusCode
	closeReason  string
}

func (h *recordingWebSocketHandler) OnMessage(msgType websocket.MessageType, data []byte) error {
	h.messageTypes = append(h.messageTypes, msgType)
	h.messages = append(h.messages, data)
	return nil
}

func (h *recordingWebSocketHandler) OnClose(status websocket.StatusCode, reason string) {
	h.closeStatus = status
	h.closeReason = reason
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type recordingEventListener struct {
	log *eventLog
}

func (l *recordingEventListener) OnEvent(r *Resource, event string) {
	l.log.add(event + ":" + r.Path)
}

type acceptAllInspector struct{}

func (i *acceptAllInspector) Inspect(message any) bool { return true }

type noopAsyncSupportListener struct{}

func (l *noopAsyncSupportListener) OnSuspend(r *Resource) {}

func (l *noopAsyncSupportListener) OnResume(r *Resource) {}

type namedBroadcaster struct{ id string }

func (b *namedBroadcaster) ID() string { return b.id }

func (b *namedBroadcaster) Broadcast(message any) error { return nil }

type mapBroadcasterFactory struct{}

func (f *mapBroadcasterFactory) Lookup(id string, create bool) (Broadcaster, error) {
	if !create {
		return nil, errors.New("not found")
	}
	return &namedBroadcaster{id: id}, nil
}

type noopBroadcasterListener struct{}

func (l *noopBroadcasterListener) OnPostCreate(b Broadcaster) {}

func (l *noopBroadcasterListener) OnComplete(b Broadcaster) {}

type prefixEndpointMapper struct{ target string }

func (m *prefixEndpointMapper) Map(requestPath string, registeredPaths []string) (string, bool) {
	for _, path := range registeredPaths {
		if path == m.target {
			return path, true
		}
	}
	return "", false
}

type readyObject struct {
	ready []*Resource
}

func (o *readyObject) OnReady(r *Resource) error {
	o.ready = append(o.ready, r)
	return nil
}

type plainObject struct{}

// counter returns a factory that counts how often it is called.
func counter[T any](count *int, fn func() T) Factory {
	return func() (any, error) {
		*count++
		return fn(), nil
	}
}

func failingFactory(err error) Factory {
	return func() (any, error) { return nil, err }
}

func panickingFactory(value any) Factory {
	return func() (any, error) { panic(value) }
}
