package boreas

import (
	"slices"
	"sync"

	"github.com/telemetrytv/trace"
)

var (
	indexDebug = trace.Bind("boreas:index")
)

// WiringIndex tracks the latest wiring announced by every node and resolves
// which node serves a path.
type WiringIndex struct {
	mu        sync.Mutex
	nodeNames []string
	snapshots map[string]*WiringSnapshot
}

func NewWiringIndex() *WiringIndex {
	return &WiringIndex{
		nodeNames: []string{},
		snapshots: map[string]*WiringSnapshot{},
	}
}

// Bind keeps the index current with the announcements carried by transport.
func (x *WiringIndex) Bind(transport Transport) error {
	return transport.BindWiringAnnounce(x.SetSnapshot)
}

// SetSnapshot records a node's wiring, replacing whatever the node announced
// before.
func (x *WiringIndex) SetSnapshot(snapshot *WiringSnapshot) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.snapshots[snapshot.Name]; exists {
		indexDebug.Tracef("Replacing wiring of %s with %s", snapshot.Name, snapshot.ID)
	} else {
		indexDebug.Tracef("Indexing wiring %s of %s", snapshot.ID, snapshot.Name)
		x.nodeNames = append(x.nodeNames, snapshot.Name)
	}
	x.snapshots[snapshot.Name] = snapshot
}

// UnsetNode forgets a node.
func (x *WiringIndex) UnsetNode(name string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	i := slices.Index(x.nodeNames, name)
	if i == -1 {
		return
	}
	indexDebug.Tracef("Removing wiring of %s", name)
	x.nodeNames = slices.Delete(x.nodeNames, i, i+1)
	delete(x.snapshots, name)
}

// Snapshot returns the latest wiring announced by a node.
func (x *WiringIndex) Snapshot(name string) (*WiringSnapshot, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	snapshot, ok := x.snapshots[name]
	return snapshot, ok
}

// Nodes returns the indexed node names in the order they first announced.
func (x *WiringIndex) Nodes() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return slices.Clone(x.nodeNames)
}

// ResolveNode returns the first node, in announcement order, with a route
// serving path.
func (x *WiringIndex) ResolveNode(path string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, name := range x.nodeNames {
		if _, ok := x.snapshots[name].ResolveRoute(path); ok {
			return name, true
		}
	}
	return "", false
}

// ResolveWebSocketNode returns the first node, in announcement order, with a
// websocket path pattern serving path.
func (x *WiringIndex) ResolveWebSocketNode(path string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, name := range x.nodeNames {
		if _, ok := x.snapshots[name].ResolveWebSocketPath(path); ok {
			return name, true
		}
	}
	return "", false
}
