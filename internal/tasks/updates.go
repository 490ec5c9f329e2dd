package tasks

import "fmt"

// ProgressUpdate represents a progress event during a batch operation.
//
// Used to send real-time updates to the CLI layer for display on the
// diagnostic channel.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	RequestAccess Phase = iota
	ImportPhotos
	RestoreMetadata
	VerifyAsset
	BuildLinks
	DeleteAssets
)

func (p Phase) String() string {
	switch p {
	case RequestAccess:
		return "request_access"
	case ImportPhotos:
		return "import_photos"
	case RestoreMetadata:
		return "restore_metadata"
	case VerifyAsset:
		return "verify_asset"
	case BuildLinks:
		return "build_links"
	case DeleteAssets:
		return "delete_assets"
	default:
		return ""
	}
}

func requestAccessUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   RequestAccess,
		Step:    1,
		Total:   1,
		Message: "Requesting write access to the photo library...",
	}
}

func importPhotoUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportPhotos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Importing %s...", step, total, path),
	}
}

func restoreMetadataUpdate(step, total int, albums int, favorite bool) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RestoreMetadata,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Restoring metadata (%d albums, favorite=%t)...", step, total, albums, favorite),
	}
}

func verifyAssetUpdate(step, total int, identifier string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   VerifyAsset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Verifying %s...", step, total, identifier),
	}
}

func buildLinksUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildLinks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Building deep links for %d imported photos...", count),
	}
}

func deleteAssetsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteAssets,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Deleting %d assets...", count),
	}
}
