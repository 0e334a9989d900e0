package ai

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/observability"
)

type fakeProvider struct {
	text        string
	err         error
	gotBullet   string
	gotRole     string
	gotMIME     string
	hadDeadline bool
}

func (f *fakeProvider) RewriteBullet(ctx context.Context, bullet, role string) (string, *observability.TokenUsage, error) {
	f.gotBullet, f.gotRole = bullet, role
	_, f.hadDeadline = ctx.Deadline()
	return f.text, &observability.TokenUsage{InputTokens: 4, OutputTokens: 2, TotalTokens: 6}, f.err
}

func (f *fakeProvider) RecognizeText(ctx context.Context, mimeType string, _ []byte) (string, *observability.TokenUsage, error) {
	f.gotMIME = mimeType
	_, f.hadDeadline = ctx.Deadline()
	return f.text, nil, f.err
}

func (f *fakeProvider) GetModelInfo(context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) CircuitBreakerStats() map[string]any {
	return map[string]any{"overall_healthy": true}
}

func (f *fakeProvider) Close() error { return nil }

func operationConfig(apiKey string) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "gemini-2.0-flash",
		APIKey:           apiKey,
		Timeout:          durationPtr(5 * time.Second),
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.7),
		UseSystemPrompts: boolPtr(true),
		CircuitBreaker:   config.CircuitBreakerConfig{Enabled: true, MaxRequests: 3, Interval: time.Minute, Timeout: time.Minute, MinRequests: 3, FailureThreshold: 0.6},
	}
}

func TestServiceRewriteBullet(t *testing.T) {
	fake := &fakeProvider{text: "Led a team of 5 engineers"}
	svc := newServiceWithProvider(fake, operationConfig("key"), OperationRewrite, testLogger(), nil)

	got, err := svc.RewriteBullet(context.Background(), "led team", "Engineering Manager")
	require.NoError(t, err)
	assert.Equal(t, "Led a team of 5 engineers", got)
	assert.Equal(t, "led team", fake.gotBullet)
	assert.Equal(t, "Engineering Manager", fake.gotRole)
	assert.True(t, fake.hadDeadline)
	assert.Equal(t, OperationRewrite, svc.Operation())
}

func TestServiceRecognizeText(t *testing.T) {
	fake := &fakeProvider{text: "JANE DOE"}
	svc := newServiceWithProvider(fake, operationConfig("key"), OperationOCR, testLogger(), nil)

	got, err := svc.RecognizeText(context.Background(), "image/jpeg", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "JANE DOE", got)
	assert.Equal(t, "image/jpeg", fake.gotMIME)
}

func TestServicePropagatesErrors(t *testing.T) {
	aiErr := errors.NewAIError(errors.ErrCodeAIServiceFailed, "upstream failed", stderrors.New("503"))
	svc := newServiceWithProvider(&fakeProvider{err: aiErr}, operationConfig("key"), OperationRewrite, testLogger(), nil)

	_, err := svc.RewriteBullet(context.Background(), "x", "y")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAI))
}

func TestServiceHealthAndStats(t *testing.T) {
	svc := newServiceWithProvider(&fakeProvider{}, operationConfig("key"), OperationRewrite, testLogger(), nil)

	info := svc.GetModelInfo(context.Background())
	assert.True(t, info.Available)
	assert.Equal(t, true, svc.Stats()["overall_healthy"])
	assert.NoError(t, svc.Close())
}

func TestNewServiceRequiresAPIKey(t *testing.T) {
	_, err := NewService(operationConfig(""), OperationRewrite, config.LoadedPrompts{}, testLogger(), nil)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMissingAPIKey, appErr.Code)
}

func TestNewServiceRejectsUnknownProvider(t *testing.T) {
	cfg := operationConfig("key")
	cfg.Provider = "llama"

	_, err := NewService(cfg, OperationRewrite, config.LoadedPrompts{}, testLogger(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestNewServiceGemini(t *testing.T) {
	svc, err := NewService(operationConfig("test-key"), OperationOCR, config.LoadedPrompts{}, testLogger(), nil)
	require.NoError(t, err)

	stats := svc.Stats()
	aiStats, ok := stats["ai_operations"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AI-ocr", aiStats["name"])
	assert.Equal(t, true, stats["overall_healthy"])
}
