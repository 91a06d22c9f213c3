// Package hcldiscovery discovers annotated classes from HCL manifests.
//
// Every file ending in .hcl under the scanned root is read. Each file lists
// the classes it contributes as component blocks, labelled with the marker
// kind and the class name:
//
//	component "HandlerService" "chat.RoomHandler" {}
//	component "BroadcasterService" "chat.RoomBroadcaster" {}
//
// Files are visited in lexical walk order and blocks are reported in file
// order. Blocks naming an unknown marker kind, and files that fail to parse,
// are skipped.
package hcldiscovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/RobertWHurst/boreas"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/telemetrytv/trace"
)

var (
	discoveryDebug = trace.Bind("boreas:discovery:hcl")
)

// DefaultExtension is the file extension manifests are recognized by.
const DefaultExtension = ".hcl"

type manifestFile struct {
	Components []*componentBlock `hcl:"component,block"`
}

type componentBlock struct {
	Kind      string `hcl:"kind,label"`
	ClassName string `hcl:"class,label"`
}

// Discoverer reads component manifests from the file system.
type Discoverer struct {
	// Extension manifests must end with. Defaults to DefaultExtension.
	Extension string
}

var _ boreas.Discoverer = &Discoverer{}

func New() *Discoverer {
	return &Discoverer{Extension: DefaultExtension}
}

// Discover reports every component declared in the manifests under root.
// root may also be a single manifest file.
func (d *Discoverer) Discover(root string, report func(kind boreas.MarkerKind, className string)) error {
	discoveryDebug.Tracef("Looking for manifests in %s", root)

	filePaths, err := d.findManifests(root)
	if err != nil {
		discoveryDebug.Tracef("Failed to walk %s: %v", root, err)
		return err
	}
	if len(filePaths) == 0 {
		discoveryDebug.Tracef("No manifests found in %s", root)
		return nil
	}

	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			discoveryDebug.Tracef("Skipping manifest %s: %v", filePath, diags)
			continue
		}

		var manifest manifestFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
			discoveryDebug.Tracef("Skipping manifest %s: %v", filePath, diags)
			continue
		}

		discoveryDebug.Tracef("Manifest %s declares %d components", filePath, len(manifest.Components))

		for _, component := range manifest.Components {
			kind, err := boreas.ParseMarkerKind(component.Kind)
			if err != nil {
				discoveryDebug.Tracef("Skipping %s in %s: %v", component.ClassName, filePath, err)
				continue
			}
			report(kind, component.ClassName)
		}
	}

	return nil
}

func (d *Discoverer) findManifests(root string) ([]string, error) {
	extension := d.Extension
	if extension == "" {
		extension = DefaultExtension
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
