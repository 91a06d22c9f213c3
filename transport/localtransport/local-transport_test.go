package localtransport

import (
	"testing"

	"github.com/RobertWHurst/boreas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTransport_AnnounceWiring_DeliversToEveryHandler(t *testing.T) {
	transport := New()

	var first, second *boreas.WiringSnapshot
	require.NoError(t, transport.BindWiringAnnounce(func(snapshot *boreas.WiringSnapshot) {
		first = snapshot
	}))
	require.NoError(t, transport.BindWiringAnnounce(func(snapshot *boreas.WiringSnapshot) {
		second = snapshot
	}))

	snapshot := &boreas.WiringSnapshot{ID: "wiring-1", Name: "node-a"}
	err := transport.AnnounceWiring(snapshot)

	assert.NoError(t, err)
	assert.Same(t, snapshot, first)
	assert.Same(t, snapshot, second)
}

func TestLocalTransport_AnnounceWiring_HandlesNoHandler(t *testing.T) {
	transport := New()

	err := transport.AnnounceWiring(&boreas.WiringSnapshot{ID: "wiring-1"})

	assert.NoError(t, err)
}

func TestLocalTransport_BindWiringAnnounce_RegistersHandler(t *testing.T) {
	transport := New()

	err := transport.BindWiringAnnounce(func(snapshot *boreas.WiringSnapshot) {})

	assert.NoError(t, err)
	assert.Len(t, transport.wiringAnnounceHandlers, 1)
}

func TestLocalTransport_UnbindWiringAnnounce_RemovesHandlers(t *testing.T) {
	transport := New()

	calls := 0
	transport.BindWiringAnnounce(func(snapshot *boreas.WiringSnapshot) { calls++ })
	transport.BindWiringAnnounce(func(snapshot *boreas.WiringSnapshot) { calls++ })

	err := transport.UnbindWiringAnnounce()
	assert.NoError(t, err)
	assert.Nil(t, transport.wiringAnnounceHandlers)

	transport.AnnounceWiring(&boreas.WiringSnapshot{ID: "wiring-1"})
	assert.Equal(t, 0, calls)
}

func TestLocalTransport_AnnounceWiring_FromScan(t *testing.T) {
	transport := New()
	catalog := boreas.NewCatalog()
	framework := boreas.NewFrameworkConfig("node-a", catalog)

	var announced *boreas.WiringSnapshot
	transport.BindWiringAnnounce(func(snapshot *boreas.WiringSnapshot) {
		announced = snapshot
	})

	processor := boreas.NewAnnotationProcessor(framework, catalog, boreas.Matches{
		{Kind: boreas.BroadcasterService, ClassName: "chat.RoomBroadcaster"},
	})
	processor.Transport = transport

	_, err := processor.Scan("ignored")
	require.NoError(t, err)
	require.NotNil(t, announced)
	assert.Equal(t, "node-a", announced.Name)
	assert.Equal(t, "chat.RoomBroadcaster", announced.DefaultBroadcasterClassName)
}
