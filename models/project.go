package models

import "time"

// Project status values. Status is monotonic: a project starts processing and
// moves exactly once to completed or failed.
const (
	ProjectStatusProcessing = "processing"
	ProjectStatusCompleted  = "completed"
	ProjectStatusFailed     = "failed"
)

// Video source discriminator.
const (
	SourceUpload = "upload"
	SourceLink   = "link"
)

type Project struct {
	ID              string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title           string     `json:"title"`
	Source          string     `json:"source"`
	VideoURL        string     `json:"videoUrl"`
	VideoKey        string     `json:"videoKey"`
	Duration        int        `json:"duration"`
	Status          string     `json:"status"`
	Progress        int        `json:"progress"`
	ProgressMessage string     `json:"progressMessage"`
	ScriptData      string     `gorm:"type:text" json:"scriptData,omitempty"`
	AudioMP3URL     string     `json:"audioMp3Url,omitempty"`
	AudioMP3Key     string     `json:"audioMp3Key,omitempty"`
	AudioWAVURL     string     `json:"audioWavUrl,omitempty"`
	AudioWAVKey     string     `json:"audioWavKey,omitempty"`
	ErrorMessage    string     `json:"errorMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

func (Project) TableName() string {
	return "project"
}
