package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/library"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/manifest"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/protocol"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// PublishEngine defines batch operations against the photo library.
//
// All failure modes are carried inside the returned outcomes; callers encode
// them onto the wire rather than branching on Go errors.
type PublishEngine interface {
	// ExecuteImport imports each manifest entry and best-effort restores
	// album memberships and favorite status from prior versions.
	ExecuteImport(ctx context.Context, photos []manifest.Photo, progress chan<- ProgressUpdate) *protocol.BatchOutcome

	// ExecuteDelete deletes the identified assets as a single request.
	ExecuteDelete(ctx context.Context, identifiers []string, progress chan<- ProgressUpdate) *protocol.DeleteOutcome

	// LocateURL resolves an identifier to a deep link into the library.
	LocateURL(ctx context.Context, identifier string) string
}

// PhotosEngine implements PublishEngine.
// Contains dependencies on the photo library binding and the diagnostic logger.
type PhotosEngine struct {
	library        library.AssetLibrary
	logger         *log.Logger
	limiter        *rate.Limiter
	scheme         string
	verifyAttempts int
	verifyDelay    time.Duration
}

// EngineOpts contains configuration for creating a PhotosEngine.
type EngineOpts struct {
	Library        library.AssetLibrary
	Logger         *log.Logger
	URLScheme      string        // Deep-link scheme (default: photos)
	CallsPerSecond float64       // Library call pacing (default: 2)
	VerifyAttempts int           // Post-import verification attempts (default: 5)
	VerifyDelay    time.Duration // Delay between verification attempts (default: 200ms)
}

// NewPhotosEngine creates a new PhotosEngine with the provided library binding.
func NewPhotosEngine(opts EngineOpts) *PhotosEngine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.URLScheme == "" {
		opts.URLScheme = "photos"
	}
	if opts.CallsPerSecond <= 0 {
		opts.CallsPerSecond = 2.0
	}
	if opts.VerifyAttempts <= 0 {
		opts.VerifyAttempts = 5
	}
	if opts.VerifyDelay <= 0 {
		opts.VerifyDelay = 200 * time.Millisecond
	}

	return &PhotosEngine{
		library:        opts.Library,
		logger:         opts.Logger,
		limiter:        rate.NewLimiter(rate.Limit(opts.CallsPerSecond), 1),
		scheme:         opts.URLScheme,
		verifyAttempts: opts.VerifyAttempts,
		verifyDelay:    opts.VerifyDelay,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PhotosEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ExecuteImport runs one batch import.
//
// An empty batch succeeds immediately without touching the library, so no-op
// invocations never trigger a permission prompt. Otherwise write access is
// requested exactly once up front; denial aborts the batch before any import.
// Entries are processed strictly sequentially in manifest order. One bad
// photo never aborts the batch.
func (e *PhotosEngine) ExecuteImport(ctx context.Context, photos []manifest.Photo, progress chan<- ProgressUpdate) *protocol.BatchOutcome {
	if len(photos) == 0 {
		return protocol.ImportSuccess(nil)
	}
	if e.library == nil {
		return protocol.ImportError(protocol.CodeLibraryUnavailable, "photo library binding not initialized")
	}

	e.sendProgress(progress, requestAccessUpdate())
	if err := e.library.EnsureWriteAccess(ctx); err != nil {
		e.logger.Error("write access not granted", "err", err)
		return protocol.ImportError(errorCode(err, protocol.CodeAuthError), err.Error())
	}

	total := len(photos)
	results := make([]protocol.PhotoResult, 0, total)
	for i, photo := range photos {
		e.sendProgress(progress, importPhotoUpdate(i+1, total, photo.Path))
		results = append(results, e.importOne(ctx, photo, i+1, total, progress))
	}

	succeeded := 0
	for i := range results {
		if results[i].Status == protocol.StatusSuccess {
			succeeded++
		}
	}

	// Deep links are informational output only and always recomputed; the
	// scheme and the collection identifier belong to the library.
	e.sendProgress(progress, buildLinksUpdate(succeeded))
	collection, haveCollection := e.library.DefaultCollectionIdentifier(ctx)
	for i := range results {
		if results[i].Status != protocol.StatusSuccess {
			continue
		}
		if haveCollection {
			results[i].URL = library.AlbumsURL(e.scheme, collection, results[i].LocalIdentifier)
		} else {
			results[i].URL = library.AssetURL(e.scheme, results[i].LocalIdentifier)
		}
	}

	return protocol.ImportSuccess(results)
}

// importOne imports a single manifest entry.
//
// The import itself is a hard gate; restoration of favorite status and album
// memberships is best effort and never turns a successful import into a
// failure. Partial restoration is expected and representable: only albums
// that actually restored appear in the result.
func (e *PhotosEngine) importOne(ctx context.Context, photo manifest.Photo, step, total int, progress chan<- ProgressUpdate) protocol.PhotoResult {
	if _, err := os.Stat(photo.Path); err != nil {
		return protocol.PhotoError(photo.Path, protocol.CodeFileNotFound, fmt.Errorf("no file at %s", photo.Path))
	}

	var priorAlbums []library.AlbumMembership
	priorFavorite := false
	if prev := library.Canonical(photo.PreviousIdentifier); prev != "" {
		priorAlbums = e.library.FetchAlbumsContaining(ctx, prev)
		priorFavorite = e.library.IsFavorite(ctx, prev)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return protocol.PhotoError(photo.Path, protocol.CodeImportFailed, err)
	}
	newID, err := e.library.ImportPhoto(ctx, photo.Path)
	if err != nil {
		return protocol.PhotoError(photo.Path, errorCode(err, protocol.CodeImportFailed), err)
	}

	e.sendProgress(progress, verifyAssetUpdate(step, total, newID))
	if !e.verifyAsset(ctx, newID) {
		// Reported optimistically: accepted creation requests eventually
		// resolve per the library's own guarantee.
		e.logger.Warn("imported asset not yet resolvable", "path", photo.Path, "identifier", newID)
	}

	result := protocol.PhotoSuccess(photo.Path, newID)
	if priorFavorite || len(priorAlbums) > 0 {
		e.sendProgress(progress, restoreMetadataUpdate(step, total, len(priorAlbums), priorFavorite))
	}

	if priorFavorite {
		if err := e.library.SetFavorite(ctx, true, newID); err != nil {
			e.logger.Warn("favorite restore failed", "path", photo.Path, "identifier", newID, "err", err)
		} else {
			result.FavoriteRestored = true
		}
	}

	for _, album := range priorAlbums {
		if err := e.library.AddAsset(ctx, newID, album.UUID); err != nil {
			e.logger.Warn("album restore failed", "path", photo.Path, "album", album.UUID, "err", err)
			continue
		}
		result.AlbumsRestored = append(result.AlbumsRestored, protocol.AlbumRestored{
			Identifier: album.UUID,
			Title:      album.Title,
		})
	}

	return result
}

// verifyAsset polls until the new identifier resolves, bounded by the
// configured attempt count and delay. This is the only retry in the worker;
// it absorbs the library's eventual-consistency lag after imports.
func (e *PhotosEngine) verifyAsset(ctx context.Context, fullID string) bool {
	for attempt := 0; attempt < e.verifyAttempts; attempt++ {
		if e.library.ResolveAsset(ctx, fullID) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(e.verifyDelay):
		}
	}
	return false
}

// ExecuteDelete deletes the identified assets.
//
// An empty list succeeds immediately without touching the library. The whole
// list goes to the library as a single request so the user sees exactly one
// confirmation dialog; the library's contract makes it all-or-nothing.
func (e *PhotosEngine) ExecuteDelete(ctx context.Context, identifiers []string, progress chan<- ProgressUpdate) *protocol.DeleteOutcome {
	if len(identifiers) == 0 {
		return protocol.DeleteSuccess(0)
	}
	if e.library == nil {
		return protocol.DeleteError(protocol.CodeLibraryUnavailable, "photo library binding not initialized")
	}

	e.sendProgress(progress, requestAccessUpdate())
	if err := e.library.EnsureWriteAccess(ctx); err != nil {
		e.logger.Error("write access not granted", "err", err)
		return protocol.DeleteError(errorCode(err, protocol.CodeAuthError), err.Error())
	}

	e.sendProgress(progress, deleteAssetsUpdate(len(identifiers)))
	if err := e.limiter.Wait(ctx); err != nil {
		return protocol.DeleteError(protocol.CodeDeleteFailed, err.Error())
	}
	if err := e.library.DeleteAssets(ctx, identifiers); err != nil {
		e.logger.Error("delete failed", "count", len(identifiers), "err", err)
		return protocol.DeleteError(errorCode(err, protocol.CodeDeleteFailed), err.Error())
	}

	return protocol.DeleteSuccess(len(identifiers))
}

// LocateURL resolves an identifier to a deep link, preferring the album view
// when the default collection resolves.
func (e *PhotosEngine) LocateURL(ctx context.Context, identifier string) string {
	if e.library != nil {
		if collection, ok := e.library.DefaultCollectionIdentifier(ctx); ok {
			return library.AlbumsURL(e.scheme, collection, identifier)
		}
	}
	return library.AssetURL(e.scheme, identifier)
}

// errorCode maps a library error to its wire code, falling back to the given
// generic code for unexpected failures.
func errorCode(err error, fallback string) string {
	var op *library.OpError
	switch {
	case errors.As(err, &op):
		return op.Code
	case errors.Is(err, library.ErrWriteAccessDenied):
		return protocol.CodeWriteAccessDenied
	case errors.Is(err, library.ErrAssetNotFound):
		return protocol.CodeAssetNotFound
	case errors.Is(err, library.ErrAlbumNotFound):
		return protocol.CodeAlbumNotFound
	default:
		return fallback
	}
}
