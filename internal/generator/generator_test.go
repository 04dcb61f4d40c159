package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/minicolabs/minutes-flow/internal/config"
	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/internal/minutes"
)

func TestNewRequiresCredential(t *testing.T) {
	_, err := New(context.Background(), "", config.GeminiConfig{Model: "gemini-2.5-flash"}, logger.New("error"))
	require.Error(t, err)
	assert.Equal(t, minutes.ErrConfiguration, minutes.KindOf(err))
}

func TestBuildContentsText(t *testing.T) {
	contents, err := buildContents(minutes.TextPayload("Team discussed Q3 budget."), "")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "Team discussed Q3 budget.", contents[0].Parts[0].Text)
}

func TestBuildContentsAudio(t *testing.T) {
	raw := []byte{0x1A, 0x45, 0xDF, 0xA3}
	payload := minutes.AudioPayload(raw, "audio/webm")

	contents, err := buildContents(payload, "")
	require.NoError(t, err)
	require.Len(t, contents[0].Parts, 1)

	part := contents[0].Parts[0]
	require.NotNil(t, part.InlineData)
	assert.Equal(t, raw, part.InlineData.Data)
	assert.Equal(t, "audio/webm", part.InlineData.MIMEType)
}

func TestBuildContentsAdditionalInstructions(t *testing.T) {
	contents, err := buildContents(minutes.TextPayload("standup notes"), "keep it short")
	require.NoError(t, err)
	require.Len(t, contents[0].Parts, 2)
	assert.Equal(t, "Additional Instructions: keep it short", contents[0].Parts[1].Text)
}

func TestBuildContentsBadBase64(t *testing.T) {
	payload := minutes.Payload{Data: "not!!valid@@base64", MIMEType: "audio/wav"}
	_, err := buildContents(payload, "")
	require.Error(t, err)
	assert.Equal(t, minutes.ErrGeneration, minutes.KindOf(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want minutes.ErrorKind
	}{
		{"403", errors.New("googleapi: Error 403: permission denied"), minutes.ErrAuth},
		{"401", errors.New("got status 401 Unauthorized"), minutes.ErrAuth},
		{"unauthenticated", errors.New("rpc error: UNAUTHENTICATED"), minutes.ErrAuth},
		{"server error", errors.New("Error 500: internal"), minutes.ErrGeneration},
		{"network", errors.New("dial tcp: connection refused"), minutes.ErrGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, minutes.KindOf(classify(tt.err)))
		})
	}
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "## Meeting Minutes\n"},
						{Text: "### Date\n"},
					},
				},
			},
		},
	}
	assert.Equal(t, "## Meeting Minutes\n### Date\n", responseText(resp))
}

func TestGenerateDerivativeEmptySource(t *testing.T) {
	g := &implGenerator{cfg: config.GeminiConfig{}, logger: logger.New("error")}

	_, err := g.GenerateDerivative(context.Background(), "   ", minutes.FeatureFollowUp)
	require.Error(t, err)

	var me *minutes.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, minutes.ErrDerivative, me.Kind)
	assert.Equal(t, minutes.FeatureFollowUp, me.Feature)
}

func TestGenerateDerivativeUnknownFeature(t *testing.T) {
	g := &implGenerator{cfg: config.GeminiConfig{}, logger: logger.New("error")}

	_, err := g.GenerateDerivative(context.Background(), "## Meeting Minutes", minutes.FeatureKind("poem"))
	require.Error(t, err)
	assert.Equal(t, minutes.ErrDerivative, minutes.KindOf(err))
}

func TestFeaturePromptsCoverAllKinds(t *testing.T) {
	for _, f := range []minutes.FeatureKind{
		minutes.FeatureFollowUp,
		minutes.FeatureBroadcast,
		minutes.FeatureActionItems,
		minutes.FeatureAttendance,
	} {
		assert.NotEmpty(t, featurePrompts[f], "missing prompt for %s", f)
	}
}
