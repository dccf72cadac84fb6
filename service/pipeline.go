package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"adscribe-server/config"
	"adscribe-server/logger"
	"adscribe-server/models"
	"adscribe-server/store"
)

// Pipeline turns a source video into a timed narration script with synthesized
// speech and a merged audio track. One Run per project at a time; stages are
// sequential and every collaborator is injected.
type Pipeline struct {
	cfg       *config.Config
	store     store.Store
	blobs     BlobStore
	tools     Toolchain
	describer Describer
	narrator  Narrator
	log       logger.Logger
	leases    *leaseRegistry
}

func NewPipeline(
	cfg *config.Config,
	s store.Store,
	blobs BlobStore,
	tools Toolchain,
	describer Describer,
	narrator Narrator,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		store:     s,
		blobs:     blobs,
		tools:     tools,
		describer: describer,
		narrator:  narrator,
		log:       log,
		leases:    newLeaseRegistry(),
	}
}

// CancelRun aborts the in-flight run for projectID, if any. The run still
// cleans up its workspace and records a failed status with reason "cancelled".
func (p *Pipeline) CancelRun(projectID string) bool {
	return p.leases.Cancel(projectID)
}

// Run executes the full pipeline for one project. The first fatal error ends
// the run as failed; per-item faults degrade and composition faults only drop
// the merged track. The workspace is removed on every exit path.
func (p *Pipeline) Run(ctx context.Context, projectID string) (err error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.leases.Acquire(projectID, cancel); err != nil {
		return err
	}
	defer p.leases.Release(projectID)

	defer func() {
		if rec := recover(); rec != nil {
			err = p.fail(runCtx, projectID, fmt.Errorf("unexpected fault: %v", rec))
		}
	}()

	project, err := p.store.GetProject(runCtx, projectID)
	if err != nil {
		return fmt.Errorf("load project %s: %w", projectID, err)
	}
	if project.Status != models.ProjectStatusProcessing {
		p.log.Info(ctx, "[project %s] Already %s, skipping run", projectID, project.Status)
		return nil
	}

	p.log.Info(ctx, "[project %s] Starting run (source=%s)", projectID, project.Source)
	reporter := newProgressReporter(p.store, p.log, projectID)
	reporter.Report(runCtx, 5, "Preparing workspace...")

	ws, err := newWorkspace(projectID, p.log)
	if err != nil {
		return p.fail(runCtx, projectID, err)
	}
	defer ws.Release(ctx)

	reporter.Report(runCtx, 10, "Acquiring video...")
	videoPath, duration, err := p.acquireVideo(runCtx, project, ws)
	if err != nil {
		return p.fail(runCtx, projectID, err)
	}

	reporter.Report(runCtx, 20, "Extracting frames...")
	frames, err := p.extractFrames(runCtx, projectID, videoPath, duration, ws)
	if err != nil {
		return p.fail(runCtx, projectID, err)
	}

	reporter.Report(runCtx, 40, "Describing scenes...")
	descs, err := p.describeFrames(runCtx, projectID, frames)
	if err != nil {
		return p.fail(runCtx, projectID, err)
	}

	reporter.Report(runCtx, 60, "Assembling script...")
	units := assembleScript(projectID, descs)

	reporter.Report(runCtx, 70, "Synthesizing narration...")
	if err := p.narrateUnits(runCtx, projectID, units); err != nil {
		return p.fail(runCtx, projectID, err)
	}

	reporter.Report(runCtx, 85, "Saving script...")
	if err := p.store.CreateUnits(runCtx, units); err != nil {
		return p.fail(runCtx, projectID, fmt.Errorf("persist units: %w", err))
	}

	scriptJSON, err := json.Marshal(units)
	if err != nil {
		return p.fail(runCtx, projectID, fmt.Errorf("serialize script: %w", err))
	}
	completion := store.CompletionUpdate{ScriptData: string(scriptJSON)}

	reporter.Report(runCtx, 95, "Merging audio...")
	merged, err := p.composeAudio(runCtx, projectID, units, ws)
	if err != nil {
		var compErr *CompositionError
		if !errors.As(err, &compErr) {
			return p.fail(runCtx, projectID, err)
		}
		p.log.Warn(ctx, "[project %s] Completing without merged audio: %v", projectID, err)
	} else {
		completion.AudioMP3URL = merged.MP3URL
		completion.AudioMP3Key = merged.MP3Key
		completion.AudioWAVURL = merged.WAVURL
		completion.AudioWAVKey = merged.WAVKey
	}

	if err := p.store.UpdateProject(runCtx, projectID, completion); err != nil {
		return p.fail(runCtx, projectID, fmt.Errorf("persist completion: %w", err))
	}
	reporter.Report(runCtx, 100, "Completed")

	p.log.Info(ctx, "[project %s] Run completed (%d units)", projectID, len(units))
	return nil
}

// fail records the terminal failed status and returns the triggering fault.
// The status write uses an uncancellable context so a cancelled run can still
// reach its terminal state. ctx is the run context: a fault observed after it
// was cancelled is recorded as a cancellation, since a killed subprocess
// surfaces as an exit error rather than the context error.
func (p *Pipeline) fail(ctx context.Context, projectID string, cause error) error {
	msg := cause.Error()
	if errors.Is(cause, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		msg = "cancelled"
	}
	if err := p.store.UpdateProject(context.WithoutCancel(ctx), projectID, store.FailureUpdate{Message: msg}); err != nil {
		p.log.Error(ctx, "[project %s] Failed to record failure: %v", projectID, err)
	}
	p.log.Error(ctx, "[project %s] Run failed: %v", projectID, cause)
	return cause
}
