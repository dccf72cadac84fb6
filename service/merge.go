package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"adscribe-server/models"
)

// mergedAudio references the two variants of the composed narration track.
type mergedAudio struct {
	MP3URL string
	MP3Key string
	WAVURL string
	WAVKey string
}

// composeAudio concatenates every unit's audio, in order, into one MP3 track
// and a WAV transcode, and uploads both. It fails with CompositionError when
// no unit has audio or the merge itself breaks; the caller treats that as a
// degraded-but-completed run.
func (p *Pipeline) composeAudio(ctx context.Context, projectID string, units []models.Unit, ws *Workspace) (*mergedAudio, error) {
	mergeDir, err := ws.Mkdir("merge")
	if err != nil {
		return nil, &CompositionError{Err: err}
	}

	var files []string
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if unit.AudioKey == "" {
			continue
		}
		localPath := fmt.Sprintf("%s/unit_%03d.mp3", mergeDir, unit.Order)
		if err := p.blobs.FetchFile(ctx, unit.AudioKey, localPath); err != nil {
			p.log.Warn(ctx, "[project %s] Unit %d audio not fetched for merge: %v", projectID, unit.Order, err)
			continue
		}
		files = append(files, localPath)
	}

	if len(files) == 0 {
		return nil, &CompositionError{Err: ErrNoAudio}
	}

	mp3Path := ws.Path("merge/complete.mp3")
	if err := p.tools.ConcatAudio(ctx, files, mp3Path); err != nil {
		return nil, &CompositionError{Err: err}
	}

	wavPath := ws.Path("merge/complete.wav")
	if err := p.tools.TranscodeWAV(ctx, mp3Path, wavPath); err != nil {
		return nil, &CompositionError{Err: err}
	}

	suffix := uuid.NewString()[:8]
	mp3Key := fmt.Sprintf("projects/%s/audio/complete_%s.mp3", projectID, suffix)
	mp3URL, err := p.blobs.PutFile(ctx, mp3Key, mp3Path, "audio/mpeg")
	if err != nil {
		return nil, &CompositionError{Err: err}
	}

	wavKey := fmt.Sprintf("projects/%s/audio/complete_%s.wav", projectID, suffix)
	wavURL, err := p.blobs.PutFile(ctx, wavKey, wavPath, "audio/wav")
	if err != nil {
		return nil, &CompositionError{Err: err}
	}

	return &mergedAudio{
		MP3URL: mp3URL,
		MP3Key: mp3Key,
		WAVURL: wavURL,
		WAVKey: wavKey,
	}, nil
}
