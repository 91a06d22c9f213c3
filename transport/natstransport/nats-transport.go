package natstransport

import (
	"strings"

	"github.com/RobertWHurst/boreas"
	"github.com/nats-io/nats.go"
	"github.com/telemetrytv/trace"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	transportNatsAnnounceDebug = trace.Bind("boreas:transport:nats:announce")
)

// SubjectPrefix namespaces every subject the transport uses.
const SubjectPrefix = "boreas"

// NatsTransport publishes wiring announcements on NATS as msgpack.
type NatsTransport struct {
	NatsConnection       *nats.Conn
	unbindWiringAnnounce func() error
}

var _ boreas.Transport = &NatsTransport{}

func New(natsConnection *nats.Conn) *NatsTransport {
	return &NatsTransport{
		NatsConnection: natsConnection,
	}
}

func namespace(parts ...string) string {
	return SubjectPrefix + "." + strings.Join(parts, ".")
}

// EncodeSnapshot returns the wire form of a wiring snapshot.
func EncodeSnapshot(snapshot *boreas.WiringSnapshot) ([]byte, error) {
	return msgpack.Marshal(snapshot)
}

// DecodeSnapshot parses the wire form of a wiring snapshot.
func DecodeSnapshot(data []byte) (*boreas.WiringSnapshot, error) {
	snapshot := &boreas.WiringSnapshot{}
	if err := msgpack.Unmarshal(data, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// AnnounceWiring publishes the snapshot to every bound node.
func (t *NatsTransport) AnnounceWiring(snapshot *boreas.WiringSnapshot) error {
	transportNatsAnnounceDebug.Tracef("Announcing wiring %s of %s with %d routes",
		snapshot.ID, snapshot.Name, len(snapshot.Routes))

	subject := namespace("wiring", "announce")

	snapshotBytes, err := EncodeSnapshot(snapshot)
	if err != nil {
		transportNatsAnnounceDebug.Tracef("Failed to marshal snapshot: %v", err)
		return err
	}

	if err := t.NatsConnection.Publish(subject, snapshotBytes); err != nil {
		transportNatsAnnounceDebug.Tracef("Failed to publish: %v", err)
		return err
	}

	transportNatsAnnounceDebug.Trace("Wiring announcement sent successfully")
	return nil
}

// BindWiringAnnounce subscribes handler to wiring announcements. Messages
// that fail to decode are dropped.
func (t *NatsTransport) BindWiringAnnounce(handler func(snapshot *boreas.WiringSnapshot)) error {
	transportNatsAnnounceDebug.Trace("Binding wiring announcement handler")

	subject := namespace("wiring", "announce")

	sub, err := t.NatsConnection.Subscribe(subject, func(msg *nats.Msg) {
		snapshot, err := DecodeSnapshot(msg.Data)
		if err != nil {
			transportNatsAnnounceDebug.Tracef("Failed to unmarshal snapshot: %v", err)
			return
		}

		transportNatsAnnounceDebug.Tracef("Received wiring %s of %s", snapshot.ID, snapshot.Name)
		handler(snapshot)
	})
	if err != nil {
		transportNatsAnnounceDebug.Tracef("Failed to subscribe: %v", err)
		return err
	}

	t.unbindWiringAnnounce = func() error {
		transportNatsAnnounceDebug.Trace("Unbinding wiring announcement handler")
		return sub.Unsubscribe()
	}

	transportNatsAnnounceDebug.Trace("Wiring announcement handler bound successfully")
	return nil
}

func (t *NatsTransport) UnbindWiringAnnounce() error {
	if t.unbindWiringAnnounce == nil {
		return nil
	}
	unbind := t.unbindWiringAnnounce
	t.unbindWiringAnnounce = nil
	return unbind()
}
