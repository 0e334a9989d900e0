package ai

import (
	"context"
	"fmt"

	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/observability"
)

// Service runs one generative operation with a timeout and telemetry. It
// satisfies bullets.Rewriter and extract.Recognizer.
type Service struct {
	Provider  AIProvider
	operation string
	config    *config.OperationAIConfig
	logger    *errors.Logger
	om        *observability.ObservabilityManager
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, prompts config.LoadedPrompts, logger *errors.Logger, om *observability.ObservabilityManager) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			fmt.Sprintf("no API key configured for the %s operation", operationType), nil)
	}

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries)

	var provider AIProvider
	var err error
	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, prompts, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}
	if err != nil {
		return nil, err
	}

	return newServiceWithProvider(provider, cfg, operationType, logger, om), nil
}

func newServiceWithProvider(provider AIProvider, cfg *config.OperationAIConfig, operationType string, logger *errors.Logger, om *observability.ObservabilityManager) *Service {
	return &Service{
		Provider:  provider,
		operation: operationType,
		config:    cfg,
		logger:    logger,
		om:        om,
	}
}

// NewRewriter builds the bullet rewrite service from the full configuration.
func NewRewriter(cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) (*Service, error) {
	opCfg := cfg.GetRewriteConfig()
	return NewService(&opCfg, OperationRewrite, cfg.PromptsForOperation(OperationRewrite), logger, om)
}

// NewRecognizer builds the image text recognition service.
func NewRecognizer(cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) (*Service, error) {
	opCfg := cfg.GetOCRConfig()
	return NewService(&opCfg, OperationOCR, cfg.PromptsForOperation(OperationOCR), logger, om)
}

// Operation returns the operation this service runs.
func (s *Service) Operation() string {
	return s.operation
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout == nil || *s.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, *s.config.Timeout)
}

// RewriteBullet returns the provider's raw rewrite of one bullet.
func (s *Service) RewriteBullet(ctx context.Context, bullet, role string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var text string
	err := s.om.TrackAIOperation(ctx, s.operation, func(ctx context.Context) *observability.AIOperationResult {
		var usage *observability.TokenUsage
		var err error
		text, usage, err = s.Provider.RewriteBullet(ctx, bullet, role)
		return &observability.AIOperationResult{Error: err, TokenUsage: usage}
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// RecognizeText returns the text found in an image.
func (s *Service) RecognizeText(ctx context.Context, mimeType string, image []byte) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var text string
	err := s.om.TrackAIOperation(ctx, s.operation, func(ctx context.Context) *observability.AIOperationResult {
		var usage *observability.TokenUsage
		var err error
		text, usage, err = s.Provider.RecognizeText(ctx, mimeType, image)
		return &observability.AIOperationResult{Error: err, TokenUsage: usage}
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("Recognized image text", "mime_type", mimeType, "chars", len(text))
	return text, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Stats returns circuit breaker state.
func (s *Service) Stats() map[string]any {
	return s.Provider.CircuitBreakerStats()
}

// Close releases the provider.
func (s *Service) Close() error {
	return s.Provider.Close()
}
