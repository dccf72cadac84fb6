package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Frame is an extracted still image. Frames live only for the duration of a
// run; the blob copy is kept for the describer and discarded with the project
// workspace semantics (blob keys are never persisted).
type Frame struct {
	Timestamp int
	Path      string
	Key       string
	URL       string
}

// sampleTimestamps spreads at most maxFrames timestamps across the video.
// The interval never drops below minInterval, and even a zero-length video
// yields one timestamp at 0.
func sampleTimestamps(durationSec, maxFrames, minInterval int) []int {
	interval := durationSec / maxFrames
	if interval < minInterval {
		interval = minInterval
	}

	var timestamps []int
	for t := 0; t < durationSec && len(timestamps) < maxFrames; t += interval {
		timestamps = append(timestamps, t)
	}
	if len(timestamps) == 0 {
		timestamps = append(timestamps, 0)
	}
	return timestamps
}

// extractFrames pulls one still per sampled timestamp and uploads each to the
// blob store. A frame that fails extraction or upload is skipped; zero
// surviving frames is fatal.
func (p *Pipeline) extractFrames(ctx context.Context, projectID, videoPath string, durationSec int, ws *Workspace) ([]Frame, error) {
	framesDir, err := ws.Mkdir("frames")
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	timestamps := sampleTimestamps(durationSec, p.cfg.Pipeline.FrameCap, p.cfg.Pipeline.MinIntervalSec)
	p.log.Info(ctx, "[project %s] Sampling %d frames across %ds", projectID, len(timestamps), durationSec)

	var frames []Frame
	for i, ts := range timestamps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outPath := fmt.Sprintf("%s/frame_%03d.jpg", framesDir, i)
		if err := p.tools.ExtractFrame(ctx, videoPath, ts, outPath); err != nil {
			p.log.Warn(ctx, "[project %s] Skipping frame at %ds: %v", projectID, ts, err)
			continue
		}

		key := fmt.Sprintf("projects/%s/frames/frame_%d_%s.jpg", projectID, ts, uuid.NewString()[:8])
		frameURL, err := p.blobs.PutFile(ctx, key, outPath, "image/jpeg")
		if err != nil {
			p.log.Warn(ctx, "[project %s] Skipping frame at %ds (upload): %v", projectID, ts, err)
			continue
		}

		frames = append(frames, Frame{
			Timestamp: ts,
			Path:      outPath,
			Key:       key,
			URL:       frameURL,
		})
	}

	if len(frames) == 0 {
		return nil, &ExtractionError{Err: fmt.Errorf("no frames extracted from %s", videoPath)}
	}
	return frames, nil
}
