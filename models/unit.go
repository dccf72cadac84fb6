package models

import "time"

// Descriptive unit kinds. The intro note is fixed boilerplate placed at
// order 0 / timestamp 0; every other unit is an AI scene description.
const (
	UnitKindIntroNote   = "intro_note"
	UnitKindDescription = "description"
)

type Unit struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID string    `gorm:"index;type:varchar(64)" json:"projectId"`
	Timestamp int       `json:"timestamp"`
	Kind      string    `json:"kind"`
	Text      string    `gorm:"type:text" json:"text"`
	AudioURL  string    `json:"audioUrl,omitempty"`
	AudioKey  string    `json:"audioKey,omitempty"`
	Order     int       `gorm:"column:order" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Unit) TableName() string {
	return "unit"
}
