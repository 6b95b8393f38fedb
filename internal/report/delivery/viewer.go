// Package delivery provides the platform-facing implementations of the
// report service's viewer, sharer and notifier collaborators.
package delivery

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// FileViewer opens a PDF with the host platform's default viewer.
type FileViewer struct{}

// NewFileViewer constructs a viewer for the current platform.
func NewFileViewer() *FileViewer { return &FileViewer{} }

// Open launches the platform file opener for path. The viewer process is
// detached; Open returns once the launch succeeds.
func (v *FileViewer) Open(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("delivery: launch viewer: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
