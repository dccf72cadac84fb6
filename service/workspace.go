package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"adscribe-server/logger"
)

// Workspace is the isolated scratch directory for a single pipeline run.
// Everything the run downloads or renders lives under Dir and is removed
// wholesale by Release.
type Workspace struct {
	Dir string
	log logger.Logger
}

func newWorkspace(projectID string, log logger.Logger) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "adscribe-"+projectID+"-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{Dir: dir, log: log}, nil
}

// Path returns the absolute path for a file inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Mkdir creates a subdirectory inside the workspace.
func (w *Workspace) Mkdir(name string) (string, error) {
	dir := filepath.Join(w.Dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create workspace dir %s: %w", name, err)
	}
	return dir, nil
}

// Release removes the workspace. Cleanup is best-effort: failures are logged
// and never escalated.
func (w *Workspace) Release(ctx context.Context) {
	if err := os.RemoveAll(w.Dir); err != nil {
		w.log.Warn(ctx, "Failed to remove workspace %s: %v", w.Dir, err)
		return
	}
	w.log.Debug(ctx, "Workspace removed: %s", w.Dir)
}
