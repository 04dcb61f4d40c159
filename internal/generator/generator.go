package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/minicolabs/minutes-flow/internal/minutes"
)

// StreamMinutes sends one primary generation request and yields text
// fragments in arrival order. The fragment channel closes on normal
// completion; a single classified error on the error channel is the failure
// terminal. No retry is performed.
func (g *implGenerator) StreamMinutes(ctx context.Context, payload minutes.Payload, additionalInstructions string) (<-chan string, <-chan error) {
	fragments := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(fragments)
		defer close(errs)

		contents, err := buildContents(payload, additionalInstructions)
		if err != nil {
			errs <- err
			return
		}

		cfg := &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(g.cfg.Temperature),
		}

		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, cfg) {
			if err != nil {
				errs <- classify(err)
				return
			}

			text := responseText(resp)
			if text == "" {
				continue
			}

			select {
			case fragments <- text:
			case <-ctx.Done():
				errs <- classify(ctx.Err())
				return
			}
		}
	}()

	return fragments, errs
}

// GenerateDerivative sends one non-streaming request transforming completed
// minutes into the requested derivative document. Any failure is normalized
// to a derivative error tagged with the feature; no partial output is
// returned.
func (g *implGenerator) GenerateDerivative(ctx context.Context, sourceText string, feature minutes.FeatureKind) (string, error) {
	if strings.TrimSpace(sourceText) == "" {
		return "", minutes.NewDerivativeError(feature, fmt.Errorf("source minutes are empty"))
	}

	task, ok := featurePrompts[feature]
	if !ok {
		return "", minutes.NewDerivativeError(feature, fmt.Errorf("unknown feature kind %q", feature))
	}

	prompt := fmt.Sprintf("Source Minutes:\n\n%s\n\nTask: %s", sourceText, task)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(derivativeSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(g.cfg.DerivativeTemperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", minutes.NewDerivativeError(feature, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", minutes.NewDerivativeError(feature, fmt.Errorf("empty response from Gemini"))
	}

	return text, nil
}

// buildContents assembles the request parts: the payload (text or inline
// audio), then optional free-text instructions.
func buildContents(payload minutes.Payload, additionalInstructions string) ([]*genai.Content, error) {
	var parts []*genai.Part

	if payload.IsText() {
		parts = append(parts, genai.NewPartFromText(payload.Text))
	} else {
		raw, err := payload.DecodeData()
		if err != nil {
			return nil, minutes.NewError(minutes.ErrGeneration, "decode audio payload", err)
		}
		parts = append(parts, genai.NewPartFromBytes(raw, payload.MIMEType))
	}

	if additionalInstructions != "" {
		parts = append(parts, genai.NewPartFromText("Additional Instructions: "+additionalInstructions))
	}

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}

// classify maps provider failures onto the session error taxonomy. Credential
// rejections get a distinct, actionable message; everything else during
// primary generation is a generation error.
func classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "UNAUTHENTICATED") || strings.Contains(msg, "PERMISSION_DENIED") {
		return minutes.NewError(minutes.ErrAuth, "the API key is invalid or lacks permissions", err)
	}
	return minutes.NewError(minutes.ErrGeneration, "generation was interrupted", err)
}
