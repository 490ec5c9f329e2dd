// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/library"
)

// MockLibrary is a no-op test double for [library.AssetLibrary]
type MockLibrary struct{}

func (m *MockLibrary) EnsureWriteAccess(ctx context.Context) error { return nil }
func (m *MockLibrary) FetchAlbumsContaining(ctx context.Context, canonicalID string) []library.AlbumMembership {
	return nil
}
func (m *MockLibrary) IsFavorite(ctx context.Context, canonicalID string) bool { return false }
func (m *MockLibrary) SetFavorite(ctx context.Context, favorite bool, fullID string) error {
	return nil
}
func (m *MockLibrary) ImportPhoto(ctx context.Context, path string) (string, error) {
	return "MOCK-0000/L0/001", nil
}
func (m *MockLibrary) DeleteAssets(ctx context.Context, fullIDs []string) error       { return nil }
func (m *MockLibrary) AddAsset(ctx context.Context, fullID, albumUUID string) error   { return nil }
func (m *MockLibrary) DefaultCollectionIdentifier(ctx context.Context) (string, bool) { return "", false }
func (m *MockLibrary) ResolveAsset(ctx context.Context, fullID string) bool           { return true }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MustWriteFile writes content to a file inside dir and returns its path.
func MustWriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
