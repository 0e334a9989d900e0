// Package analysis runs the resume pipeline: extraction, ATS scoring, skill
// gap, bullet rewrites and recommendations.
package analysis

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"resuscan/internal/bullets"
	"resuscan/internal/catalog"
	"resuscan/internal/errors"
	"resuscan/internal/observability"
	"resuscan/internal/scoring"
	"resuscan/internal/types"
)

// Extractor reads the text of an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Request is one uploaded resume to analyze.
type Request struct {
	FileName    string
	ContentType string
	Data        []byte
	JobTitle    string
}

// Analyzer wires the scoring engine to its collaborators. The extractor and
// the rewriter may be nil.
type Analyzer struct {
	catalogs  catalog.Source
	extractor Extractor
	improver  *bullets.Improver
	logger    *errors.Logger
	om        *observability.ObservabilityManager
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithExtractor enables Analyze on uploaded documents.
func WithExtractor(e Extractor) Option {
	return func(a *Analyzer) { a.extractor = e }
}

// WithRewriter enables bullet improvement with bounded parallelism.
func WithRewriter(r bullets.Rewriter, concurrency int) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.improver = bullets.NewImprover(r, concurrency)
		}
	}
}

// WithObservability records scoring metrics and spans.
func WithObservability(om *observability.ObservabilityManager) Option {
	return func(a *Analyzer) { a.om = om }
}

func New(catalogs catalog.Source, logger *errors.Logger, opts ...Option) *Analyzer {
	if catalogs == nil {
		catalogs = catalog.NewStatic(nil)
	}
	a := &Analyzer{catalogs: catalogs, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Engine returns a scoring engine over the current catalog snapshot.
func (a *Analyzer) Engine() *scoring.Engine {
	return scoring.New(a.catalogs.Current())
}

// CanRewrite reports whether a bullet rewriter is configured.
func (a *Analyzer) CanRewrite() bool {
	return a.improver != nil
}

// CanExtract reports whether documents can be read.
func (a *Analyzer) CanExtract() bool {
	return a.extractor != nil
}

// Extract returns the text of one uploaded document.
func (a *Analyzer) Extract(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if a.extractor == nil {
		return "", errors.NewConfigError(errors.ErrCodeInvalidConfig, "document extraction is not configured", nil)
	}
	text, err := a.extractor.Extract(ctx, name, contentType, data)
	if err != nil {
		return "", err
	}
	if err := scoring.CheckInput(text); err != nil {
		return "", err
	}
	return text, nil
}

// ScoreATS scores text for jobTitle.
func (a *Analyzer) ScoreATS(ctx context.Context, text, jobTitle string) (types.AtsScore, error) {
	return a.scoreWith(ctx, a.Engine(), text, jobTitle)
}

func (a *Analyzer) scoreWith(ctx context.Context, engine *scoring.Engine, text, jobTitle string) (types.AtsScore, error) {
	if err := scoring.CheckInput(text); err != nil {
		return types.AtsScore{}, err
	}
	score := engine.ScoreATS(text, jobTitle)
	a.om.RecordATSScore(ctx, score.Overall)
	return score, nil
}

// SkillGap compares the skills found in text with those required for jobTitle.
func (a *Analyzer) SkillGap(text, jobTitle string) (types.SkillGapResult, error) {
	if err := scoring.CheckInput(text); err != nil {
		return types.SkillGapResult{}, err
	}
	return a.Engine().AnalyzeSkillGap(text, jobTitle), nil
}

// Tips returns improvement tips for the component scores.
func (a *Analyzer) Tips(scores types.ComponentScores) types.TipList {
	return types.TipList{Tips: scoring.GenerateTips(scores)}
}

// Recommend maps missing skills to courses and projects.
func (a *Analyzer) Recommend(missingSkills []string, jobTitle string) types.Recommendations {
	return a.Engine().Recommend(missingSkills, jobTitle)
}

// ImproveBullets rewrites the given bullets for jobTitle.
func (a *Analyzer) ImproveBullets(ctx context.Context, items []string, jobTitle string) (types.BulletImprovements, error) {
	if a.improver == nil {
		return types.BulletImprovements{}, errors.NewAIError(errors.ErrCodeAIUnavailable,
			"bullet rewriting is not configured", nil)
	}
	improved, err := a.improver.Improve(ctx, items, jobTitle)
	if err != nil {
		return types.BulletImprovements{}, err
	}
	return types.BulletImprovements{Improvements: improved}, nil
}

// Analyze extracts the uploaded document and runs AnalyzeText on it.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (types.ComprehensiveAnalysis, error) {
	text, err := a.Extract(ctx, req.FileName, req.ContentType, req.Data)
	if err != nil {
		return types.ComprehensiveAnalysis{}, err
	}
	return a.AnalyzeText(ctx, text, req.JobTitle)
}

// AnalyzeText runs every analysis on already extracted text. Bullet rewrites
// are skipped with a warning when no rewriter is configured.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, jobTitle string) (types.ComprehensiveAnalysis, error) {
	ctx, span := a.om.Tracer("resuscan.analysis").Start(ctx, "analysis.comprehensive")
	defer span.End()
	span.SetAttributes(attribute.String("job_title", jobTitle), attribute.Int("resume_length", len(text)))

	// One snapshot for the whole report, even if the catalog reloads meanwhile.
	engine := a.Engine()
	ats, err := a.scoreWith(ctx, engine, text, jobTitle)
	if err != nil {
		return types.ComprehensiveAnalysis{}, err
	}

	gap := engine.AnalyzeSkillGap(text, jobTitle)

	result := types.ComprehensiveAnalysis{
		ResumeText:      text,
		JobTitle:        jobTitle,
		ATS:             ats,
		SkillGap:        gap,
		Bullets:         types.BulletImprovements{Improvements: []types.BulletImprovement{}},
		Recommendations: engine.Recommend(gap.MissingSkills, jobTitle),
	}

	items := bullets.Extract(text)
	switch {
	case len(items) == 0:
	case a.improver == nil:
		result.Bullets.Skipped = true
		if a.logger != nil {
			a.logger.Warn("Skipping bullet improvement, no rewriter configured", "bullets", len(items))
		}
	default:
		improved, err := a.improver.Improve(ctx, items, jobTitle)
		if err != nil {
			span.RecordError(err)
			return types.ComprehensiveAnalysis{}, err
		}
		result.Bullets.Improvements = improved
	}

	span.SetAttributes(attribute.Float64("ats.overall", ats.Overall))
	return result, nil
}
