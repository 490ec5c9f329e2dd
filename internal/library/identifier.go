package library

import (
	"fmt"
	"strings"
)

// Canonical returns the canonical form of an asset identifier: the substring
// before the first '/', or the whole string when no '/' is present.
//
// Photo library identifiers come in a bare form ("UUID") and a suffixed form
// ("UUID/L0/001"). Album and favorite lookups are keyed by the canonical
// form; the full form is what gets reported back and persisted. Canonical is
// pure and idempotent, and the empty string maps to itself.
func Canonical(id string) string {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[:i]
	}
	return id
}

// AlbumsURL builds a deep link into an album view focused on an asset.
// Identifiers are canonicalized; the scheme belongs to the library binding.
func AlbumsURL(scheme, collectionID, assetID string) string {
	return fmt.Sprintf("%s:albums?albumUuid=%s&assetUuid=%s", scheme, Canonical(collectionID), Canonical(assetID))
}

// AssetURL builds a deep link to a single asset, used when no default
// collection can be resolved.
func AssetURL(scheme, assetID string) string {
	return fmt.Sprintf("%s://asset?assetLocalIdentifier=%s", scheme, Canonical(assetID))
}
