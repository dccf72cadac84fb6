package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"adscribe-server/config"
	"adscribe-server/logger"
)

// Worker consumes queued pipeline runs. Returning an error from the handler
// hands the failure to asynq's supervision (retry, logging) instead of losing
// it in a detached goroutine.
type Worker struct {
	pipeline *Pipeline
	log      logger.Logger
}

func NewWorker(pipeline *Pipeline, log logger.Logger) *Worker {
	return &Worker{pipeline: pipeline, log: log}
}

// Start runs the asynq consumer in the background.
func (w *Worker) Start(cfg *config.Config) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		},
		asynq.Config{
			Concurrency: cfg.Pipeline.Concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProcessProject, w.handleProcess)

	w.log.Info(context.Background(), "Starting pipeline worker (concurrency %d)", cfg.Pipeline.Concurrency)
	go func() {
		if err := srv.Run(mux); err != nil {
			w.log.Error(context.Background(), "Worker stopped: %v", err)
		}
	}()
}

func (w *Worker) handleProcess(ctx context.Context, t *asynq.Task) error {
	var payload ProcessPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := w.pipeline.Run(ctx, payload.ProjectID); err != nil {
		if errors.Is(err, ErrProjectBusy) {
			// Another run holds the lease; retrying would race it.
			return fmt.Errorf("project %s: %v: %w", payload.ProjectID, err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}
