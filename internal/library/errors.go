package library

import "fmt"

var (
	ErrWriteAccessDenied = fmt.Errorf("photo library write access denied")
	ErrAssetNotFound     = fmt.Errorf("asset not found")
	ErrAlbumNotFound     = fmt.Errorf("album not found")
)

// OpError is an operation failure reported by the library binding with its
// own code and message. The code crosses the wire verbatim so the
// orchestrator sees what the native layer saw.
type OpError struct {
	Code    string
	Message string
}

func (e *OpError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
