package ai

import (
	"context"

	"resuscan/internal/observability"
)

// AIProvider is a generative backend for the resume operations.
// Token usage may be nil when the backend does not report it.
type AIProvider interface {
	RewriteBullet(ctx context.Context, bullet, role string) (string, *observability.TokenUsage, error)
	RecognizeText(ctx context.Context, mimeType string, image []byte) (string, *observability.TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	CircuitBreakerStats() map[string]any
	Close() error
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
