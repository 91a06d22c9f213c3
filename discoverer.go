package boreas

// Discoverer finds the annotated classes under a root location and reports
// each one. It only reports valid marker kinds. An error means the root
// itself could not be read.
type Discoverer interface {
	Discover(root string, report func(kind MarkerKind, className string)) error
}

// DiscovererFunc adapts a function to the Discoverer interface.
type DiscovererFunc func(root string, report func(kind MarkerKind, className string)) error

func (f DiscovererFunc) Discover(root string, report func(kind MarkerKind, className string)) error {
	return f(root, report)
}

// Match is a single discovery result.
type Match struct {
	Kind      MarkerKind
	ClassName string
}

// Matches is a fixed list of discovery results, reported in order for any
// root.
type Matches []Match

func (m Matches) Discover(root string, report func(kind MarkerKind, className string)) error {
	for _, match := range m {
		report(match.Kind, match.ClassName)
	}
	return nil
}
