package boreas

// Transport carries wiring announcements between nodes.
type Transport interface {
	AnnounceWiring(snapshot *WiringSnapshot) error
	BindWiringAnnounce(handler func(snapshot *WiringSnapshot)) error
	UnbindWiringAnnounce() error
}
