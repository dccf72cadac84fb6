package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

const describeSystemPrompt = "You are a professional audio describer specialized in describing " +
	"film scenes for blind audiences, following the ABNT NBR 16452:2016 guidelines. " +
	"Describe the important visual elements of the scene objectively, clearly and concisely: " +
	"characters, actions, setting, facial expressions, wardrobe, lighting and atmosphere. " +
	"Use the present tense. Be specific but avoid subjective interpretation. " +
	"Do NOT invent information; describe ONLY what is visible in the image. " +
	"Maximum 2-3 sentences."

// Describer is the vision oracle: one still image in, one scene description out.
type Describer interface {
	Describe(ctx context.Context, imagePath string, timestampSec int) (string, error)
}

type geminiDescriber struct {
	apiKey string
	model  string
}

// NewGeminiDescriber creates a Describer backed by the Gemini API.
func NewGeminiDescriber(apiKey, model string) Describer {
	return &geminiDescriber{apiKey: apiKey, model: model}
}

func (d *geminiDescriber) Describe(ctx context.Context, imagePath string, timestampSec int) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  d.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf("Describe this video scene at %s:", formatTimestamp(timestampSec))),
		genai.NewPartFromBytes(data, "image/jpeg"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(describeSystemPrompt, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, d.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("non-text response from Gemini")
	}
	return strings.TrimSpace(text), nil
}

// fallbackDescription substitutes for a frame whose description failed.
func fallbackDescription(timestampSec int) string {
	return fmt.Sprintf("Scene at %s.", formatTimestamp(timestampSec))
}

// formatTimestamp renders whole seconds as MM:SS.
func formatTimestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// frameDescription pairs a sampled timestamp with its narration text.
type frameDescription struct {
	Timestamp int
	Text      string
}

// describeFrames asks the vision oracle about every frame in timestamp order.
// A failed frame degrades to the fallback text; this stage never fails the run.
func (p *Pipeline) describeFrames(ctx context.Context, projectID string, frames []Frame) ([]frameDescription, error) {
	pacing := time.Duration(p.cfg.Pipeline.DescribePacingMS) * time.Millisecond

	descs := make([]frameDescription, 0, len(frames))
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := p.describer.Describe(ctx, frame.Path, frame.Timestamp)
		if err != nil {
			p.log.Warn(ctx, "[project %s] Frame at %ds not described, using fallback: %v",
				projectID, frame.Timestamp, err)
			text = fallbackDescription(frame.Timestamp)
		}
		descs = append(descs, frameDescription{Timestamp: frame.Timestamp, Text: text})
		p.log.Info(ctx, "[project %s] Described frame %d/%d (%ds)", projectID, i+1, len(frames), frame.Timestamp)

		// Throttle between oracle calls to respect upstream rate limits.
		if i < len(frames)-1 {
			select {
			case <-time.After(pacing):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return descs, nil
}
