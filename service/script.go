package service

import (
	"time"

	"github.com/google/uuid"

	"adscribe-server/models"
)

// introNoteText is the fixed compliance note placed at order 0. It renders
// the ABNT NBR 16452:2016 introductory statement required for automatically
// generated audio description.
const introNoteText = "Audio description generated automatically with artificial intelligence. " +
	"This script follows the guidelines of the ABNT NBR 16452:2016 standard. " +
	"The audio description conveys the visual elements needed to understand the narrative. " +
	"Review by a professional audio describer and a consultant with visual impairment is recommended."

// assembleScript orders the frame descriptions into descriptive units and
// prepends the mandatory intro note. Pure and deterministic: order is a gap
// free sequence starting at 0, matching ascending timestamps.
func assembleScript(projectID string, descs []frameDescription) []models.Unit {
	now := time.Now()

	units := make([]models.Unit, 0, len(descs)+1)
	units = append(units, models.Unit{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Timestamp: 0,
		Kind:      models.UnitKindIntroNote,
		Text:      introNoteText,
		Order:     0,
		CreatedAt: now,
	})

	for i, d := range descs {
		units = append(units, models.Unit{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Timestamp: d.Timestamp,
			Kind:      models.UnitKindDescription,
			Text:      d.Text,
			Order:     i + 1,
			CreatedAt: now,
		})
	}
	return units
}
