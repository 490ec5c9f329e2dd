// package library defines interface AssetLibrary for interacting with the
// user's photo library.
//
// The worker core only ever talks to the library through this narrow
// capability surface; the concrete binding (PhotoKit, via the native helper)
// lives behind it.
package library

import (
	"context"
)

// AssetLibrary defines the operations the worker needs from the photo
// library. Implementations own authorization prompts, asset creation, and
// collection change requests.
type AssetLibrary interface {
	// EnsureWriteAccess requests write authorization for the library.
	// Returns ErrWriteAccessDenied if the user lacks or refuses permission.
	// Called exactly once per batch, before any other write.
	EnsureWriteAccess(ctx context.Context) error

	// FetchAlbumsContaining returns the albums containing the asset with the
	// given canonical identifier. Never fails; unknown identifiers yield an
	// empty slice.
	FetchAlbumsContaining(ctx context.Context, canonicalID string) []AlbumMembership

	// IsFavorite reports whether the asset with the given canonical
	// identifier is marked as a favorite. Never fails; unknown identifiers
	// report false.
	IsFavorite(ctx context.Context, canonicalID string) bool

	// SetFavorite sets or clears the favorite flag on the asset with the
	// given full identifier. Returns ErrAssetNotFound if the identifier does
	// not resolve.
	SetFavorite(ctx context.Context, favorite bool, fullID string) error

	// ImportPhoto imports the image file at path into the library and
	// returns the new asset's full identifier.
	ImportPhoto(ctx context.Context, path string) (string, error)

	// DeleteAssets deletes all the assets with the given full identifiers as
	// a single request. All-or-nothing: either every asset is deleted or the
	// call fails as a whole. One request means one user confirmation.
	DeleteAssets(ctx context.Context, fullIDs []string) error

	// AddAsset adds the asset with the given full identifier to the album
	// with the given UUID.
	AddAsset(ctx context.Context, fullID, albumUUID string) error

	// DefaultCollectionIdentifier returns the identifier of the library's
	// default user collection, if one can be resolved. Never fails.
	DefaultCollectionIdentifier(ctx context.Context) (string, bool)

	// ResolveAsset reports whether the asset with the given full identifier
	// is resolvable yet. Backs the bounded post-import verification poll;
	// creation requests are eventually consistent.
	ResolveAsset(ctx context.Context, fullID string) bool
}

// AlbumMembership represents one collection containing an asset.
//
// Equality for restoration purposes is by UUID only; Title is display
// metadata and may be absent.
type AlbumMembership struct {
	UUID  string
	Title string
}
