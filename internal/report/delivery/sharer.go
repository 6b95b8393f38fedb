package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirectorySharer publishes PDFs by copying them into a shared export
// directory watched by downstream tooling. It stands in for the mobile
// share sheet in a headless deployment.
type DirectorySharer struct {
	shareDir string
}

// NewDirectorySharer constructs a sharer targeting shareDir. An empty
// directory disables sharing.
func NewDirectorySharer(shareDir string) *DirectorySharer {
	return &DirectorySharer{shareDir: shareDir}
}

// Available reports whether a share directory is configured.
func (s *DirectorySharer) Available() bool {
	return s != nil && s.shareDir != ""
}

// Share copies the PDF into the share directory.
func (s *DirectorySharer) Share(ctx context.Context, path string) error {
	if !s.Available() {
		return fmt.Errorf("delivery: share directory not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.shareDir, 0o755); err != nil {
		return fmt.Errorf("delivery: ensure share dir: %w", err)
	}
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("delivery: open source: %w", err)
	}
	defer func() {
		_ = src.Close()
	}()
	target := filepath.Join(s.shareDir, filepath.Base(path))
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("delivery: create share copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return fmt.Errorf("delivery: copy to share dir: %w", err)
	}
	return dst.Close()
}
