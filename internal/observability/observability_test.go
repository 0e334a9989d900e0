package observability

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/config"
)

func TestGetObservabilityConfig(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		got := GetObservabilityConfig(nil, "1.2.3")
		assert.Equal(t, "resuscan", got.ServiceName)
		assert.Equal(t, "1.2.3", got.ServiceVersion)
		assert.False(t, got.Enabled)
		assert.Equal(t, "/metrics", got.Prometheus.Endpoint)
	})

	t.Run("app version fills service version", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Observability.Enabled = true
		cfg.Observability.ServiceName = "scanner"
		cfg.Observability.SampleRate = 0.5
		cfg.Observability.Console.PrettyPrint = true
		cfg.Observability.Prometheus.Port = "9191"

		got := GetObservabilityConfig(cfg, "dev")
		assert.Equal(t, "scanner", got.ServiceName)
		assert.Equal(t, "dev", got.ServiceVersion)
		assert.True(t, got.Enabled)
		assert.True(t, got.PrettyPrint)
		assert.InDelta(t, 0.5, got.SampleRate, 1e-9)
		assert.Equal(t, "9191", got.Prometheus.Port)
	})
}

func TestNilManagerIsSafe(t *testing.T) {
	var om *ObservabilityManager
	ctx := context.Background()

	assert.False(t, om.Enabled())
	assert.NotNil(t, om.GetMetrics())
	assert.NotNil(t, om.Tracer("test"))

	boom := stderrors.New("boom")
	err := om.TrackAIOperation(ctx, "rewrite", func(context.Context) *AIOperationResult {
		return &AIOperationResult{Error: boom, TokenUsage: &TokenUsage{InputTokens: 3}}
	})
	assert.ErrorIs(t, err, boom)

	om.RecordBusinessMetric(ctx, MetricVersionSaved, true)
	om.RecordATSScore(ctx, 72.5)
	assert.NoError(t, om.Shutdown(ctx))
}

func TestEnabledManager(t *testing.T) {
	cfg := &config.Config{}
	cfg.Observability.CustomMetrics.AIOperations = config.AIOperationsMetricsConfig{Enabled: true, TrackDuration: true, TrackTokenUsage: true}
	cfg.Observability.CustomMetrics.BusinessMetrics.Enabled = true

	om, err := NewObservabilityManager(ObservabilityConfig{
		ServiceName:    "resuscan-test",
		ServiceVersion: "test",
		Enabled:        true,
		SampleRate:     1.0,
	}, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = om.Shutdown(context.Background()) })

	m := om.GetMetrics()
	assert.NotNil(t, m.AIRequestCount)
	assert.NotNil(t, m.ATSOverallScore)
	assert.NotNil(t, m.HTTPErrors)

	calls := 0
	err = om.TrackAIOperation(context.Background(), "ocr", func(ctx context.Context) *AIOperationResult {
		calls++
		return &AIOperationResult{TokenUsage: &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	om.RecordATSScore(context.Background(), 81)
	om.RecordBusinessMetric(context.Background(), MetricDocumentRendered, false)
}

func TestHandlerSpanPassesThrough(t *testing.T) {
	called := false
	h := HandlerSpan(nil, "/api/ats-score", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/ats-score", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
