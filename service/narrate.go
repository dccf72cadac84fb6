package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"adscribe-server/models"
)

// Narrator is the speech synthesis oracle: narration text in, audio bytes out.
type Narrator interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type openaiNarrator struct {
	client openai.Client
	model  string
	voice  string
}

// NewOpenAINarrator creates a Narrator backed by the OpenAI speech API.
func NewOpenAINarrator(apiKey, baseURL, model, voice string) Narrator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiNarrator{
		client: openai.NewClient(opts...),
		model:  model,
		voice:  voice,
	}
}

func (n *openaiNarrator) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := n.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(n.model),
		Voice:          openai.AudioSpeechNewParamsVoice(n.voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty speech response")
	}
	return audio, nil
}

// validateNarrationText rejects input the synthesis API cannot accept.
func validateNarrationText(text string, maxLen int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty narration text")
	}
	if len(text) > maxLen {
		return fmt.Errorf("narration text too long (%d > %d chars)", len(text), maxLen)
	}
	return nil
}

// narrateUnits synthesizes speech for every unit and uploads it to the blob
// store. A unit whose synthesis fails keeps empty audio references; this
// stage never fails the run.
func (p *Pipeline) narrateUnits(ctx context.Context, projectID string, units []models.Unit) error {
	pacing := time.Duration(p.cfg.Pipeline.NarratePacingMS) * time.Millisecond

	for i := range units {
		if err := ctx.Err(); err != nil {
			return err
		}
		unit := &units[i]

		if err := validateNarrationText(unit.Text, p.cfg.Pipeline.MaxNarrationLen); err != nil {
			p.log.Warn(ctx, "[project %s] Unit %d rejected for synthesis: %v", projectID, unit.Order, err)
			continue
		}

		audio, err := p.narrator.Synthesize(ctx, unit.Text)
		if err != nil {
			p.log.Warn(ctx, "[project %s] Unit %d synthesis failed: %v", projectID, unit.Order, err)
			continue
		}

		key := fmt.Sprintf("projects/%s/audio/unit_%03d.mp3", projectID, unit.Order)
		audioURL, err := p.blobs.Put(ctx, key, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
		if err != nil {
			p.log.Warn(ctx, "[project %s] Unit %d audio upload failed: %v", projectID, unit.Order, err)
			continue
		}

		unit.AudioKey = key
		unit.AudioURL = audioURL
		p.log.Info(ctx, "[project %s] Synthesized unit %d/%d", projectID, i+1, len(units))

		if i < len(units)-1 {
			select {
			case <-time.After(pacing):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
