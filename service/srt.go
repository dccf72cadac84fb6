package service

import (
	"fmt"
	"strings"

	"adscribe-server/models"
)

const (
	// srtMaxEntrySec caps how long a subtitle stays on screen.
	srtMaxEntrySec = 10
	// srtLastEntrySec is the fixed duration of the final entry.
	srtLastEntrySec = 5
)

// GenerateSRT renders the ordered units as a SubRip subtitle file. Each entry
// runs until the next unit's timestamp, capped at srtMaxEntrySec; the last
// entry always lasts srtLastEntrySec.
func GenerateSRT(units []models.Unit) string {
	entries := make([]string, 0, len(units))

	for i, unit := range units {
		duration := srtLastEntrySec
		if i < len(units)-1 {
			duration = units[i+1].Timestamp - unit.Timestamp
			if duration > srtMaxEntrySec {
				duration = srtMaxEntrySec
			}
		}

		entries = append(entries, fmt.Sprintf("%d\n%s --> %s\n%s\n",
			i+1,
			formatSRTTime(unit.Timestamp),
			formatSRTTime(unit.Timestamp+duration),
			unit.Text,
		))
	}

	return strings.Join(entries, "\n")
}

// formatSRTTime renders whole seconds as HH:MM:SS,mmm.
func formatSRTTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		seconds/3600,
		(seconds%3600)/60,
		seconds%60,
		0,
	)
}
