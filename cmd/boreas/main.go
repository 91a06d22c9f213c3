// Command boreas scans a directory of component manifests, wires them into a
// framework configuration and prints the resulting wiring. It can optionally
// announce the wiring to other nodes over NATS.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/RobertWHurst/boreas"
	"github.com/RobertWHurst/boreas/discovery/hcldiscovery"
	"github.com/RobertWHurst/boreas/transport/natstransport"
	"github.com/nats-io/nats.go"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	if err := run(*configPath, flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string, args []string, w io.Writer) error {
	cfg, err := Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(args) > 0 {
		cfg.Scan.Root = args[0]
	}

	catalog := boreas.NewCatalog()
	framework := boreas.NewFrameworkConfig(cfg.Node.Name, catalog)
	processor := boreas.NewAnnotationProcessor(framework, catalog, hcldiscovery.New())

	if cfg.NATS.Announce {
		conn, err := nats.Connect(cfg.NATS.URL, nats.Name(cfg.Node.Name))
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer conn.Close()
		processor.Transport = natstransport.New(conn)
	}

	report, err := processor.Scan(cfg.Scan.Root)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	printReport(w, report, framework.Snapshot())
	return nil
}

func printReport(w io.Writer, report *boreas.ScanReport, snapshot *boreas.WiringSnapshot) {
	fmt.Fprintf(w, "scanned %s: %d matched, %d wired, %d failed\n",
		report.Root, report.Matched, report.Wired, len(report.Failures))
	for _, failure := range report.Failures {
		fmt.Fprintf(w, "  failed: %v\n", failure)
	}
	if report.AnnounceErr != nil {
		fmt.Fprintf(w, "  announce failed: %v\n", report.AnnounceErr)
	}

	fmt.Fprintf(w, "node %s\n", snapshot.Name)
	if snapshot.DefaultBroadcasterClassName != "" {
		fmt.Fprintf(w, "  broadcaster: %s\n", snapshot.DefaultBroadcasterClassName)
	}
	if snapshot.BroadcasterCacheClassName != "" {
		fmt.Fprintf(w, "  broadcaster cache: %s\n", snapshot.BroadcasterCacheClassName)
	}
	for _, filter := range snapshot.BroadcastFilters {
		fmt.Fprintf(w, "  filter: %s\n", filter)
	}
	for _, route := range snapshot.Routes {
		fmt.Fprintf(w, "  route %s -> %s (%d interceptors)\n",
			route.Pattern.String(), route.HandlerType, len(route.Interceptors))
	}
	for _, path := range snapshot.WebSocketPaths {
		fmt.Fprintf(w, "  websocket %s\n", path)
	}
}
