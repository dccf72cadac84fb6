package service

import (
	"context"
	"errors"
	"testing"

	"adscribe-server/logger"
	"adscribe-server/models"
	"adscribe-server/store"
)

func TestProgressReporterMonotonic(t *testing.T) {
	st := &fakeStore{}
	seedProject(st, 10)
	r := newProgressReporter(st, logger.New("error"), "proj-1")

	ctx := context.Background()
	r.Report(ctx, 10, "Acquiring video...")
	r.Report(ctx, 40, "Describing scenes...")
	// A late checkpoint below the high-water mark is clamped up.
	r.Report(ctx, 20, "Extracting frames...")

	var percents []int
	for _, u := range st.updates {
		if pu, ok := u.(store.ProgressUpdate); ok {
			percents = append(percents, pu.Percent)
		}
	}
	want := []int{10, 40, 40}
	if len(percents) != len(want) {
		t.Fatalf("recorded %d checkpoints, want %d", len(percents), len(want))
	}
	for i := range want {
		if percents[i] != want[i] {
			t.Errorf("checkpoint %d = %d, want %d", i, percents[i], want[i])
		}
	}
}

func TestProgressReporterWriteFailureIsNonFatal(t *testing.T) {
	st := &fakeStore{updErr: errors.New("db down")}
	st.project = &models.Project{ID: "proj-1", Status: models.ProjectStatusProcessing}
	r := newProgressReporter(st, logger.New("error"), "proj-1")

	// Must not panic or return anything; the run keeps going.
	r.Report(context.Background(), 10, "Acquiring video...")
	r.Report(context.Background(), 20, "Extracting frames...")

	if r.last != 20 {
		t.Errorf("high-water mark = %d, want 20 even with failed writes", r.last)
	}
}
