package ai

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/observability"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

const (
	modelCheckTimeout = 10 * time.Second
	maxBackoff        = 30 * time.Second
	rewriteMaxTokens  = 1024
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	prompts        promptSet
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *errors.Logger
	retryBase      time.Duration
}

var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a provider for one operation. Each operation owns
// its breakers so a failing OCR backend cannot trip bullet rewrites.
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, prompts config.LoadedPrompts, logger *errors.Logger) (*GeminiProvider, error) {
	httpClient := &http.Client{
		Timeout:   *cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed, "Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		prompts:        promptSet{loaded: prompts, custom: cfg.CustomPrompts},
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
		retryBase:      time.Second,
	}, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{Name: g.config.Model}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.DisplayName
	modelInfo.Version = model.Version

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// RewriteBullet asks for one improved bullet. The raw reply is returned;
// cleanup is the caller's job.
func (g *GeminiProvider) RewriteBullet(ctx context.Context, bullet, role string) (string, *observability.TokenUsage, error) {
	systemPrompt, userPrompt := g.prompts.rewrite(bullet, role)

	genCfg := g.generationConfig()
	genCfg.MaxOutputTokens = rewriteMaxTokens

	return g.generate(ctx, "rewrite_bullet", genai.Text(userPrompt), systemPrompt, genCfg,
		attribute.Int("input.bullet_length", len(bullet)),
		attribute.String("input.role", role),
	)
}

// RecognizeText sends the image inline with the transcription prompt.
func (g *GeminiProvider) RecognizeText(ctx context.Context, mimeType string, image []byte) (string, *observability.TokenUsage, error) {
	systemPrompt, userPrompt := g.prompts.recognize()

	text, usage, err := g.generate(ctx, "recognize_text", recognitionContents(mimeType, image, userPrompt),
		systemPrompt, g.generationConfig(),
		attribute.String("input.mime_type", mimeType),
		attribute.Int("input.image_bytes", len(image)),
	)
	if err != nil {
		return "", nil, err
	}
	return stripCodeFence(text), usage, nil
}

func recognitionContents(mimeType string, image []byte, prompt string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
}

func (g *GeminiProvider) generationConfig() *genai.GenerateContentConfig {
	genCfg := &genai.GenerateContentConfig{ResponseMIMEType: "text/plain"}
	if g.config.Temperature != nil {
		temp := *g.config.Temperature
		genCfg.Temperature = &temp
	}
	return genCfg
}

// generate runs one request through the breaker and the retry loop.
func (g *GeminiProvider) generate(
	ctx context.Context,
	operationName string,
	contents []*genai.Content,
	systemPrompt string,
	genCfg *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (string, *observability.TokenUsage, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
	)
	span.SetAttributes(spanAttributes...)

	if g.config.UseSystemPrompts != nil && *g.config.UseSystemPrompts && systemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, contents, genCfg)
		})
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", nil, errors.NewAIError(errors.ErrCodeAIUnavailable,
				"AI service temporarily unavailable for "+operationName, err)
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", nil, errors.NewAIError(errors.ErrCodeAITimeout, "AI request timed out for "+operationName, err)
		}
		return "", nil, errors.NewAIError(errors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", nil, errors.NewAIError(errors.ErrCodeAIServiceFailed, "Empty AI response for "+operationName, nil)
	}

	span.SetAttributes(attribute.Int("output.length", len(text)))
	return text, extractTokenUsage(result), nil
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	maxRetries := 0
	if g.config.MaxRetries != nil {
		maxRetries = *g.config.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", maxRetries,
				"error", lastErr.Error())

			select {
			case <-time.After(g.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", maxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed: %w", operation, lastErr)
}

// backoff doubles per attempt with up to 10% jitter, capped at maxBackoff.
func (g *GeminiProvider) backoff(attempt int) time.Duration {
	baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * g.retryBase
	jitter := time.Duration(0)
	if jitterMax := int64(float64(baseDelay) * 0.1); jitterMax > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(jitterMax)); err == nil {
			jitter = time.Duration(n.Int64())
		}
	}
	return min(baseDelay+jitter, maxBackoff)
}

// isRetryableError reports network failures, rate limiting and server-side
// errors from either API client.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}

	var genaiErr genai.APIError
	if stderrors.As(err, &genaiErr) {
		return retryableStatus(genaiErr.Code)
	}

	return false
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// stripCodeFence removes a ``` wrapper the model sometimes adds despite the prompt.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

// CircuitBreakerStats returns breaker state for the stats endpoint
func (g *GeminiProvider) CircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
		"overall_healthy":  g.circuitBreaker.IsHealthy() && g.modelBreaker.IsModelHealthy(),
	}
}

// Close implements AIProvider; the genai client holds no resources.
func (g *GeminiProvider) Close() error {
	return nil
}

func extractTokenUsage(result *genai.GenerateContentResponse) *observability.TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	usage := result.UsageMetadata
	return &observability.TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
