package boreas

import (
	"fmt"

	"github.com/telemetrytv/trace"
)

var (
	scanDebug         = trace.Bind("boreas:scan")
	scanAnnounceDebug = trace.Bind("boreas:scan:announce")
)

// ScanReport summarizes a completed scan.
type ScanReport struct {
	Root     string
	Matched  int
	Wired    int
	Failures []error

	// AnnounceErr holds the failure to announce the wiring, if any. It never
	// fails the scan.
	AnnounceErr error
}

// AnnotationProcessor wires every class a Discoverer reports into a
// Framework. Individual classes that fail to wire are traced and recorded in
// the ScanReport; the scan always carries on with the next match.
type AnnotationProcessor struct {
	Framework  Framework
	Catalog    *Catalog
	Discoverer Discoverer

	// Transport, when set, receives the framework's wiring snapshot after a
	// successful scan. The framework must implement Snapshotter. A failed
	// announcement is recorded in ScanReport.AnnounceErr.
	Transport Transport
}

func NewAnnotationProcessor(framework Framework, catalog *Catalog, discoverer Discoverer) *AnnotationProcessor {
	if framework == nil {
		panic("framework cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if discoverer == nil {
		panic("discoverer cannot be nil")
	}
	return &AnnotationProcessor{
		Framework:  framework,
		Catalog:    catalog,
		Discoverer: discoverer,
	}
}

// Scan discovers the classes under root and wires each one. Only a discovery
// failure is returned, as a *DiscoveryError.
func (p *AnnotationProcessor) Scan(root string) (*ScanReport, error) {
	scanDebug.Tracef("Scanning for annotated classes in %s", root)

	report := &ScanReport{Root: root}
	wiring := &Wiring{Catalog: p.Catalog, Framework: p.Framework}

	err := p.Discoverer.Discover(root, func(kind MarkerKind, className string) {
		report.Matched++
		scanDebug.Tracef("Found %s on %s", kind, className)

		if err := p.wire(wiring, NewServiceDescriptor(kind, className)); err != nil {
			scanDebug.Tracef("Failed to wire %s %s: %v", kind, className, err)
			report.Failures = append(report.Failures, err)
			return
		}
		report.Wired++
	})
	if err != nil {
		scanDebug.Tracef("Discovery failed for %s: %v", root, err)
		return report, &DiscoveryError{Root: root, Err: err}
	}

	scanDebug.Tracef("Scan of %s complete: %d matched, %d wired, %d failed",
		root, report.Matched, report.Wired, len(report.Failures))

	report.AnnounceErr = p.announce()
	return report, nil
}

// wire runs the policy for a single descriptor. A panic escaping the policy
// or the framework becomes a *RegistrationError.
func (p *AnnotationProcessor) wire(wiring *Wiring, d *ServiceDescriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RegistrationError{Kind: d.Kind, ClassName: d.ClassName, Err: panicError(r)}
		}
	}()

	policy, ok := PolicyFor(d.Kind)
	if !ok {
		return fmt.Errorf("no wiring policy for %s", d.Kind)
	}
	return policy(wiring, d)
}

func (p *AnnotationProcessor) announce() error {
	if p.Transport == nil {
		return nil
	}
	snapshotter, ok := p.Framework.(Snapshotter)
	if !ok {
		scanAnnounceDebug.Tracef("Framework %T cannot be snapshotted, skipping announcement", p.Framework)
		return nil
	}

	snapshot := snapshotter.Snapshot()
	scanAnnounceDebug.Tracef("Announcing wiring %s with %d routes", snapshot.ID, len(snapshot.Routes))
	if err := p.Transport.AnnounceWiring(snapshot); err != nil {
		scanAnnounceDebug.Tracef("Failed to announce wiring: %v", err)
		return fmt.Errorf("failed to announce wiring: %w", err)
	}
	return nil
}
