package service

import (
	"errors"
	"fmt"
)

// The pipeline fault taxonomy. Acquisition and extraction faults are fatal to
// the run; composition faults only drop the merged track. Per-item faults
// (one frame, one narration) never surface here at all.

type AcquisitionError struct {
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("video acquisition failed: %v", e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("frame extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("audio composition failed: %v", e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// ErrProjectBusy is returned when a second run is requested for a project
// that already holds a run lease.
var ErrProjectBusy = errors.New("project already has a run in progress")

// ErrNoAudio signals that no unit produced audio, so there is nothing to merge.
var ErrNoAudio = errors.New("no unit audio available to merge")
