// package manifest parses the batch import manifest the publishing
// orchestrator hands to the worker.
//
// The manifest is an XML document: a `manifest` root containing a `photos`
// element containing zero or more `photo` entries, each with a required
// `path` child and an optional `previousIdentifier` child. Parsing is
// structural validation only; no library interaction happens here.
package manifest

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Photo is one entry of a batch import manifest. Immutable once parsed.
type Photo struct {
	Path               string // Filesystem location of a renderable image
	PreviousIdentifier string // Full identifier of a prior version of the same logical photo, or empty
}

type manifestDoc struct {
	XMLName xml.Name   `xml:"manifest"`
	Photos  *photosDoc `xml:"photos"`
}

type photosDoc struct {
	Photos []photoDoc `xml:"photo"`
}

type photoDoc struct {
	Path               string `xml:"path"`
	PreviousIdentifier string `xml:"previousIdentifier"`
}

// Parse parses a manifest document.
//
// A missing or wrongly-named root is a hard error. A missing `photos`
// container yields an empty batch. Entries with a missing or empty `path`
// are silently skipped; the producer is trusted to supply well-formed paths
// and structurally odd entries are harmless.
func Parse(data []byte) ([]Photo, error) {
	var doc manifestDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if doc.Photos == nil {
		return []Photo{}, nil
	}

	photos := make([]Photo, 0, len(doc.Photos.Photos))
	for _, p := range doc.Photos.Photos {
		path := strings.TrimSpace(p.Path)
		if path == "" {
			continue
		}
		photos = append(photos, Photo{
			Path:               path,
			PreviousIdentifier: strings.TrimSpace(p.PreviousIdentifier),
		})
	}

	return photos, nil
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) ([]Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}
