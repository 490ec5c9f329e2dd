// package protocol defines the result documents the worker writes to stdout
// and the orchestrator parses on its side of the process boundary.
//
// Both encoder and decoder live here so the schema has exactly one home.
// Documents are UTF-8 XML terminated by a trailing newline. Diagnostics
// never appear in a document; they go to stderr.
package protocol

import "fmt"

// Outcome status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Wire error codes. Codes reported by the library binding cross the wire
// verbatim; these are the worker's own codes and generic fallbacks.
const (
	CodeAuthError          = "AUTH_ERROR"
	CodeWriteAccessDenied  = "WRITE_ACCESS_DENIED"
	CodeFileNotFound       = "FILE_NOT_FOUND"
	CodeImportFailed       = "IMPORT_FAILED"
	CodeDeleteFailed       = "DELETE_FAILED"
	CodeAssetNotFound      = "ASSET_NOT_FOUND"
	CodeAlbumNotFound      = "ALBUM_NOT_FOUND"
	CodeManifestParseError = "MANIFEST_PARSE_ERROR"
	CodeLibraryUnavailable = "LIBRARY_UNAVAILABLE"
)

// AlbumRestored records one album membership that was successfully restored
// onto a newly imported asset.
type AlbumRestored struct {
	Identifier string // Album UUID
	Title      string // Display title, may be empty
}

// PhotoResult is the outcome for a single manifest entry. Exactly one of
// LocalIdentifier (on success) or ErrorCode (on error) is set, gated by
// Status.
type PhotoResult struct {
	Path             string
	Status           string
	LocalIdentifier  string          // Full identifier, suffix preserved
	URL              string          // Deep link, informational only
	FavoriteRestored bool            // Favorite flag carried over from the prior version
	AlbumsRestored   []AlbumRestored // Only memberships that actually restored
	ErrorCode        string
	ErrorMessage     string
}

// BatchOutcome is the aggregate outcome of one batch import. A batch-level
// error means authorization or manifest validation failed before any
// per-photo work; per-photo errors live inside Results of a success outcome.
type BatchOutcome struct {
	Status       string
	Results      []PhotoResult // Manifest order; present only on overall success
	ErrorCode    string
	ErrorMessage string
}

// Result returns the result for the given manifest path.
func (o *BatchOutcome) Result(path string) (*PhotoResult, bool) {
	for i := range o.Results {
		if o.Results[i].Path == path {
			return &o.Results[i], true
		}
	}
	return nil, false
}

// DeleteOutcome is the outcome of one delete operation.
type DeleteOutcome struct {
	Status       string
	DeletedCount int
	ErrorCode    string
	ErrorMessage string
}

// ImportSuccess builds an overall-success batch outcome. Results may be
// empty but never nil.
func ImportSuccess(results []PhotoResult) *BatchOutcome {
	if results == nil {
		results = []PhotoResult{}
	}
	return &BatchOutcome{Status: StatusSuccess, Results: results}
}

// ImportError builds a batch-level error outcome; no per-photo work happened.
func ImportError(code, message string) *BatchOutcome {
	return &BatchOutcome{Status: StatusError, ErrorCode: code, ErrorMessage: message}
}

// PhotoSuccess builds a per-photo success result.
func PhotoSuccess(path, localIdentifier string) PhotoResult {
	return PhotoResult{Path: path, Status: StatusSuccess, LocalIdentifier: localIdentifier}
}

// PhotoError builds a per-photo error result.
func PhotoError(path, code string, err error) PhotoResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return PhotoResult{Path: path, Status: StatusError, ErrorCode: code, ErrorMessage: msg}
}

// DeleteSuccess builds a successful delete outcome.
func DeleteSuccess(count int) *DeleteOutcome {
	return &DeleteOutcome{Status: StatusSuccess, DeletedCount: count}
}

// DeleteError builds a failed delete outcome.
func DeleteError(code, message string) *DeleteOutcome {
	return &DeleteOutcome{Status: StatusError, ErrorCode: code, ErrorMessage: message}
}

// validateStatus rejects statuses outside the success/error pair.
func validateStatus(status string) error {
	if status != StatusSuccess && status != StatusError {
		return fmt.Errorf("invalid status %q", status)
	}
	return nil
}
