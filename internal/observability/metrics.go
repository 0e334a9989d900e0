package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// Business metric types accepted by RecordBusinessMetric.
const (
	MetricResumeScored     = "resume_scored"
	MetricVersionSaved     = "version_saved"
	MetricDocumentRendered = "document_rendered"
	MetricRateLimitHit     = "rate_limit_hit"
	MetricHTTPError        = "http_error"
)

// Metrics holds the resuscan instruments. Unset instruments are skipped.
type Metrics struct {
	// AI operation metrics
	AIRequestCount   metric.Int64Counter
	AIProcessingTime metric.Float64Histogram
	AITokenUsage     metric.Int64Counter

	// Business metrics
	ResumesScored     metric.Int64Counter
	ATSOverallScore   metric.Float64Histogram
	VersionsSaved     metric.Int64Counter
	DocumentsRendered metric.Int64Counter

	// Infrastructure metrics
	RateLimitHits metric.Int64Counter
	HTTPErrors    metric.Int64Counter
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// AIOperationResult holds the result of an AI operation including token usage
type AIOperationResult struct {
	Error      error
	TokenUsage *TokenUsage
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
		unit        string
	}{
		{&m.AIRequestCount, "resuscan_ai_requests_total", "Total number of generative AI requests", ""},
		{&m.AITokenUsage, "resuscan_ai_tokens_total", "Tokens consumed by generative AI requests", "tokens"},
		{&m.ResumesScored, "resuscan_resumes_scored_total", "Total number of resumes scored", ""},
		{&m.VersionsSaved, "resuscan_versions_saved_total", "Total number of resume versions saved", ""},
		{&m.DocumentsRendered, "resuscan_documents_rendered_total", "Total number of resume documents rendered", ""},
		{&m.RateLimitHits, "resuscan_rate_limit_hits_total", "Total number of rate limit hits", ""},
		{&m.HTTPErrors, "resuscan_http_errors_total", "Total number of HTTP error responses", ""},
	}
	for _, c := range counters {
		opts := []metric.Int64CounterOption{metric.WithDescription(c.description)}
		if c.unit != "" {
			opts = append(opts, metric.WithUnit(c.unit))
		}
		if *c.target, err = meter.Int64Counter(c.name, opts...); err != nil {
			return nil, fmt.Errorf("failed to create %s metric: %w", c.name, err)
		}
	}

	m.AIProcessingTime, err = meter.Float64Histogram(
		"resuscan_ai_request_duration_seconds",
		metric.WithDescription("Time spent in generative AI requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI duration metric: %w", err)
	}

	m.ATSOverallScore, err = meter.Float64Histogram(
		"resuscan_ats_overall_score",
		metric.WithDescription("Distribution of overall ATS scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ATS score metric: %w", err)
	}

	return m, nil
}

// TrackAIOperation runs fn inside an "ai.<operation>" span and records the
// request count, duration and token usage it reports.
func (om *ObservabilityManager) TrackAIOperation(ctx context.Context, operation string, fn func(context.Context) *AIOperationResult) error {
	ctx, span := om.Tracer("resuscan.ai").Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	span.SetAttributes(attrs...)

	toggles := om.customMetrics().AIOperations
	m := om.GetMetrics()
	if toggles.Enabled {
		if m.AIRequestCount != nil {
			m.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
		if toggles.TrackDuration && m.AIProcessingTime != nil {
			m.AIProcessingTime.Record(ctx, duration, metric.WithAttributes(attrs...))
		}
	}

	if result != nil && result.TokenUsage != nil {
		usage := result.TokenUsage
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
		if toggles.Enabled && toggles.TrackTokenUsage {
			m.recordTokenMetrics(ctx, operation, usage)
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (m *Metrics) recordTokenMetrics(ctx context.Context, operation string, usage *TokenUsage) {
	if m.AITokenUsage == nil {
		return
	}
	for _, tt := range []struct {
		tokenType string
		value     int64
	}{
		{"input", usage.InputTokens},
		{"output", usage.OutputTokens},
	} {
		m.AITokenUsage.Add(ctx, tt.value, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("token_type", tt.tokenType),
		))
	}
}

// RecordBusinessMetric increments the counter named by metricType.
func (om *ObservabilityManager) RecordBusinessMetric(ctx context.Context, metricType string, success bool, attributes ...attribute.KeyValue) {
	toggles := om.customMetrics()
	m := om.GetMetrics()

	attrs := append([]attribute.KeyValue{attribute.Bool("success", success)}, attributes...)

	var counter metric.Int64Counter
	switch metricType {
	case MetricResumeScored:
		if !toggles.BusinessMetrics.Enabled {
			return
		}
		counter = m.ResumesScored
	case MetricVersionSaved:
		if !toggles.BusinessMetrics.Enabled {
			return
		}
		counter = m.VersionsSaved
	case MetricDocumentRendered:
		if !toggles.BusinessMetrics.Enabled {
			return
		}
		counter = m.DocumentsRendered
	case MetricRateLimitHit:
		if !toggles.Infrastructure.TrackRateLimits {
			return
		}
		counter = m.RateLimitHits
	case MetricHTTPError:
		if !toggles.Infrastructure.Enabled {
			return
		}
		counter = m.HTTPErrors
	}
	if counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordATSScore counts one scored resume and records its overall score.
func (om *ObservabilityManager) RecordATSScore(ctx context.Context, overall float64) {
	om.RecordBusinessMetric(ctx, MetricResumeScored, true)
	if !om.customMetrics().BusinessMetrics.Enabled {
		return
	}
	if m := om.GetMetrics(); m.ATSOverallScore != nil {
		m.ATSOverallScore.Record(ctx, overall)
	}
}
