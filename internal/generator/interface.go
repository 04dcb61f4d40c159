package generator

import (
	"context"

	"github.com/minicolabs/minutes-flow/internal/minutes"
)

// Generator issues generation requests to the LLM provider.
//
// StreamMinutes returns a lazy, single-pass sequence of text fragments. The
// fragment channel is closed when the provider signals completion; at most
// one terminal error is delivered on the error channel, after which no more
// fragments arrive. Fragments already delivered are never retracted.
//
// GenerateDerivative is a single non-streaming request that transforms
// completed minutes into one derivative document.
type Generator interface {
	StreamMinutes(ctx context.Context, payload minutes.Payload, additionalInstructions string) (<-chan string, <-chan error)
	GenerateDerivative(ctx context.Context, sourceText string, feature minutes.FeatureKind) (string, error)
}
