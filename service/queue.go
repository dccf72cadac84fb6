package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"adscribe-server/config"
)

const TypeProcessProject = "project:process"

type ProcessPayload struct {
	ProjectID string `json:"project_id"`
}

// Queue enqueues pipeline runs. The triggering request returns immediately;
// the worker picks the task up out of band.
type Queue struct {
	client *asynq.Client
}

func NewQueue(cfg *config.Config) *Queue {
	return &Queue{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		}),
	}
}

func (q *Queue) EnqueueProcess(projectID string) error {
	payload, err := json.Marshal(ProcessPayload{ProjectID: projectID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeProcessProject, payload,
		asynq.MaxRetry(2),
		asynq.Timeout(30*time.Minute),
		asynq.Retention(24*time.Hour),
	)

	if _, err := q.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}
