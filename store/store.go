package store

import (
	"context"
	"time"

	"adscribe-server/models"
)

// Store is the persistence collaborator. It is injected into the API layer
// and the pipeline; nothing reaches the database through package state.
type Store interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	// DeleteProject removes the project and all of its units.
	DeleteProject(ctx context.Context, id string) error

	CreateUnits(ctx context.Context, units []models.Unit) error
	GetUnits(ctx context.Context, projectID string) ([]models.Unit, error)

	UpdateProject(ctx context.Context, id string, upd Update) error
}

// Update is a tagged project-row update. Each variant maps to a fixed field
// set, so every transition is a total write rather than an ad hoc patch.
type Update interface {
	fields() map[string]interface{}
}

// ProgressUpdate advances the progress checkpoint shown to pollers.
type ProgressUpdate struct {
	Percent int
	Message string
}

func (u ProgressUpdate) fields() map[string]interface{} {
	return map[string]interface{}{
		"progress":         u.Percent,
		"progress_message": u.Message,
	}
}

// DurationUpdate records the probed duration of a link-sourced video.
type DurationUpdate struct {
	Seconds int
}

func (u DurationUpdate) fields() map[string]interface{} {
	return map[string]interface{}{
		"duration": u.Seconds,
	}
}

// CompletionUpdate finalizes a successful run. The audio references stay
// empty when composition failed; the project still completes.
type CompletionUpdate struct {
	ScriptData  string
	AudioMP3URL string
	AudioMP3Key string
	AudioWAVURL string
	AudioWAVKey string
}

func (u CompletionUpdate) fields() map[string]interface{} {
	now := time.Now()
	f := map[string]interface{}{
		"status":       models.ProjectStatusCompleted,
		"script_data":  u.ScriptData,
		"completed_at": &now,
	}
	if u.AudioMP3Key != "" {
		f["audio_mp3_url"] = u.AudioMP3URL
		f["audio_mp3_key"] = u.AudioMP3Key
		f["audio_wav_url"] = u.AudioWAVURL
		f["audio_wav_key"] = u.AudioWAVKey
	}
	return f
}

// FailureUpdate finalizes a failed run with the triggering fault's message.
type FailureUpdate struct {
	Message string
}

func (u FailureUpdate) fields() map[string]interface{} {
	return map[string]interface{}{
		"status":        models.ProjectStatusFailed,
		"error_message": u.Message,
	}
}
