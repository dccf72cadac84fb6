package service

import (
	"context"

	"adscribe-server/logger"
	"adscribe-server/store"
)

// progressReporter pushes (percent, message) checkpoints for one run. Writes
// are best-effort: a failed checkpoint is logged and ignored. Percentages are
// clamped so the sequence a poller observes never decreases.
type progressReporter struct {
	store     store.Store
	log       logger.Logger
	projectID string
	last      int
}

func newProgressReporter(s store.Store, log logger.Logger, projectID string) *progressReporter {
	return &progressReporter{store: s, log: log, projectID: projectID}
}

func (r *progressReporter) Report(ctx context.Context, percent int, message string) {
	if percent < r.last {
		percent = r.last
	}
	r.last = percent

	if err := r.store.UpdateProject(ctx, r.projectID, store.ProgressUpdate{
		Percent: percent,
		Message: message,
	}); err != nil {
		r.log.Warn(ctx, "[project %s] Progress checkpoint %d%% not written: %v", r.projectID, percent, err)
		return
	}
	r.log.Debug(ctx, "[project %s] %d%% %s", r.projectID, percent, message)
}
