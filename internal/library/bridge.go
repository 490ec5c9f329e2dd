package library

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"
)

// Helper wire codes. The native helper reports these; everything else is
// passed through as an OpError.
const (
	helperCodeWriteDenied   = "writeAuthorizationDenied"
	helperCodeAssetNotFound = "assetNotFound"
	helperCodeAlbumNotFound = "albumNotFound"
)

// helperRequest is one line of JSON sent to the native helper's stdin.
type helperRequest struct {
	Op          string   `json:"op"`
	Path        string   `json:"path,omitempty"`
	Identifier  string   `json:"identifier,omitempty"`
	Identifiers []string `json:"identifiers,omitempty"`
	Album       string   `json:"album,omitempty"`
	Favorite    bool     `json:"favorite,omitempty"`
}

// helperResponse is one line of JSON read back from the helper's stdout.
type helperResponse struct {
	OK         bool          `json:"ok"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message,omitempty"`
	Identifier string        `json:"identifier,omitempty"`
	Favorite   bool          `json:"favorite,omitempty"`
	Found      bool          `json:"found,omitempty"`
	Albums     []albumRecord `json:"albums,omitempty"`
}

type albumRecord struct {
	UUID  string `json:"uuid"`
	Title string `json:"title,omitempty"`
}

// HelperBridge implements AssetLibrary by bridging each call to the native
// Photos helper binary over newline-delimited JSON on stdin/stdout. The
// helper owns all PhotoKit interaction, including authorization prompts.
//
// The bridge serializes calls; the helper is not safe under overlapping
// requests.
type HelperBridge struct {
	path   string
	logger *log.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  *json.Encoder
	stdout *bufio.Scanner
}

// NewHelperBridge creates a bridge to the helper binary at path. The helper
// process is started lazily on first use.
func NewHelperBridge(path string, logger *log.Logger) *HelperBridge {
	return &HelperBridge{path: path, logger: logger}
}

// start launches the helper process. Caller holds b.mu.
func (b *HelperBridge) start() error {
	if b.cmd != nil {
		return nil
	}

	cmd := exec.Command(b.path)
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open helper stdin: %w", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open helper stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start helper %s: %w", b.path, err)
	}

	b.cmd = cmd
	b.stdin = json.NewEncoder(in)
	b.stdout = bufio.NewScanner(out)
	return nil
}

// call sends one request and reads one response.
func (b *HelperBridge) call(ctx context.Context, req helperRequest) (*helperResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.start(); err != nil {
		return nil, err
	}

	if err := b.stdin.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to write helper request: %w", err)
	}
	if !b.stdout.Scan() {
		if err := b.stdout.Err(); err != nil {
			return nil, fmt.Errorf("failed to read helper response: %w", err)
		}
		return nil, fmt.Errorf("helper closed its output stream")
	}

	var resp helperResponse
	if err := json.Unmarshal(b.stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse helper response: %w", err)
	}
	if !resp.OK {
		return &resp, helperError(&resp)
	}
	return &resp, nil
}

// helperError maps a failed helper response to a library error.
func helperError(resp *helperResponse) error {
	switch resp.Code {
	case helperCodeWriteDenied:
		return ErrWriteAccessDenied
	case helperCodeAssetNotFound:
		return ErrAssetNotFound
	case helperCodeAlbumNotFound:
		return ErrAlbumNotFound
	default:
		return &OpError{Code: resp.Code, Message: resp.Message}
	}
}

// Close terminates the helper process, if one was started.
func (b *HelperBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cmd == nil {
		return nil
	}
	cmd := b.cmd
	b.cmd = nil
	if err := cmd.Process.Kill(); err != nil {
		return err
	}
	return cmd.Wait()
}

func (b *HelperBridge) EnsureWriteAccess(ctx context.Context) error {
	_, err := b.call(ctx, helperRequest{Op: "ensureWriteAccess"})
	return err
}

func (b *HelperBridge) FetchAlbumsContaining(ctx context.Context, canonicalID string) []AlbumMembership {
	resp, err := b.call(ctx, helperRequest{Op: "fetchAlbums", Identifier: canonicalID})
	if err != nil {
		b.logger.Warn("album lookup failed", "identifier", canonicalID, "err", err)
		return nil
	}
	albums := make([]AlbumMembership, 0, len(resp.Albums))
	for _, a := range resp.Albums {
		albums = append(albums, AlbumMembership{UUID: a.UUID, Title: a.Title})
	}
	return albums
}

func (b *HelperBridge) IsFavorite(ctx context.Context, canonicalID string) bool {
	resp, err := b.call(ctx, helperRequest{Op: "isFavorite", Identifier: canonicalID})
	if err != nil {
		b.logger.Warn("favorite lookup failed", "identifier", canonicalID, "err", err)
		return false
	}
	return resp.Favorite
}

func (b *HelperBridge) SetFavorite(ctx context.Context, favorite bool, fullID string) error {
	_, err := b.call(ctx, helperRequest{Op: "setFavorite", Identifier: fullID, Favorite: favorite})
	return err
}

func (b *HelperBridge) ImportPhoto(ctx context.Context, path string) (string, error) {
	resp, err := b.call(ctx, helperRequest{Op: "importPhoto", Path: path})
	if err != nil {
		return "", err
	}
	return resp.Identifier, nil
}

func (b *HelperBridge) DeleteAssets(ctx context.Context, fullIDs []string) error {
	_, err := b.call(ctx, helperRequest{Op: "deleteAssets", Identifiers: fullIDs})
	return err
}

func (b *HelperBridge) AddAsset(ctx context.Context, fullID, albumUUID string) error {
	_, err := b.call(ctx, helperRequest{Op: "addAsset", Identifier: fullID, Album: albumUUID})
	return err
}

func (b *HelperBridge) DefaultCollectionIdentifier(ctx context.Context) (string, bool) {
	resp, err := b.call(ctx, helperRequest{Op: "defaultCollection"})
	if err != nil {
		b.logger.Warn("default collection lookup failed", "err", err)
		return "", false
	}
	return resp.Identifier, resp.Identifier != ""
}

func (b *HelperBridge) ResolveAsset(ctx context.Context, fullID string) bool {
	resp, err := b.call(ctx, helperRequest{Op: "resolveAsset", Identifier: fullID})
	if err != nil {
		return false
	}
	return resp.Found
}
