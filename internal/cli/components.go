package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resuscan/internal/ai"
	"resuscan/internal/analysis"
	"resuscan/internal/catalog"
	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/extract"
	"resuscan/internal/objectstore"
	"resuscan/internal/observability"
	"resuscan/internal/render"
	"resuscan/internal/server"
	"resuscan/internal/store"
)

// components builds the collaborators a command needs and closes them when
// the command is done.
type components struct {
	cfg    *config.Config
	logger *errors.Logger
	om     *observability.ObservabilityManager

	rewriter   *ai.Service
	recognizer *ai.Service
	extractor  *extract.Extractor
	objects    *objectstore.Store

	closers []func() error
}

func newComponents(cmd *cobra.Command) (*components, error) {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	return &components{cfg: cfg, logger: logger}, nil
}

// enableObservability starts tracing and metrics. Only long running
// commands call it.
func (rt *components) enableObservability() error {
	om, err := observability.NewObservabilityManager(observability.GetObservabilityConfig(rt.cfg, Version), rt.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	rt.om = om
	rt.closers = append(rt.closers, func() error { return om.Shutdown(context.Background()) })
	return nil
}

func (rt *components) catalogs() (catalog.Source, error) {
	file := rt.cfg.Catalog.File
	if file == "" {
		return catalog.NewStatic(nil), nil
	}
	if !rt.cfg.Catalog.Watch {
		cat, err := catalog.Load(file)
		if err != nil {
			return nil, err
		}
		rt.logger.Info("Loaded catalog override", "file", file)
		return catalog.NewStatic(cat), nil
	}

	watcher, err := catalog.NewWatcher(file, rt.cfg.Catalog.Debounce, rt.logger)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(); err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, watcher.Stop)
	return watcher, nil
}

// aiServices creates the rewrite and OCR services. A missing API key leaves
// the feature disabled rather than failing the command.
func (rt *components) aiServices() error {
	var err error
	rt.rewriter, err = rt.optionalService(ai.NewRewriter)
	if err != nil {
		return err
	}
	rt.recognizer, err = rt.optionalService(ai.NewRecognizer)
	return err
}

func (rt *components) optionalService(build func(*config.Config, *errors.Logger, *observability.ObservabilityManager) (*ai.Service, error)) (*ai.Service, error) {
	svc, err := build(rt.cfg, rt.logger, rt.om)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeMissingAPIKey {
			rt.logger.Debug("AI feature disabled", "reason", appErr.Message)
			return nil, nil
		}
		return nil, err
	}
	rt.closers = append(rt.closers, svc.Close)
	return svc, nil
}

// analyzer wires the full pipeline: catalogs, extraction, OCR and rewrites.
func (rt *components) analyzer() (*analysis.Analyzer, error) {
	catalogs, err := rt.catalogs()
	if err != nil {
		return nil, err
	}
	if err := rt.aiServices(); err != nil {
		return nil, err
	}

	var recognizer extract.Recognizer
	if rt.recognizer != nil {
		recognizer = rt.recognizer
	}
	rt.extractor = extract.New(rt.cfg.App.MaxFileSize, recognizer, rt.logger)

	opts := []analysis.Option{
		analysis.WithExtractor(rt.extractor),
		analysis.WithObservability(rt.om),
	}
	if rt.rewriter != nil {
		opts = append(opts, analysis.WithRewriter(rt.rewriter, rt.cfg.AI.Concurrency))
	}
	return analysis.New(catalogs, rt.logger, opts...), nil
}

// modelCheckers lists the AI services for health reporting.
func (rt *components) modelCheckers() []server.ModelChecker {
	var models []server.ModelChecker
	for _, svc := range []*ai.Service{rt.rewriter, rt.recognizer} {
		if svc != nil {
			models = append(models, svc)
		}
	}
	return models
}

// objectStore connects the configured bucket, or returns nil when none is set.
func (rt *components) objectStore(ctx context.Context) (*objectstore.Store, error) {
	if rt.objects != nil || !rt.cfg.S3.Enabled() {
		return rt.objects, nil
	}
	objects, err := objectstore.New(ctx, rt.cfg.S3)
	if err != nil {
		return nil, err
	}
	rt.objects = objects
	return objects, nil
}

func (rt *components) versionStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, rt.cfg.Storage)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, st.Close)
	return st, nil
}

// renderer prints through headless Chrome and uploads to the bucket when
// one is configured.
func (rt *components) renderer(ctx context.Context) (*render.Renderer, error) {
	objects, err := rt.objectStore(ctx)
	if err != nil {
		return nil, err
	}

	printer := render.ChromePrinter{ExecPath: rt.cfg.Render.ChromePath, Timeout: rt.cfg.Render.Timeout}
	opts := []render.Option{render.WithObservability(rt.om)}
	if objects != nil {
		opts = append(opts, render.WithUploader(objects, rt.cfg.S3.RenderPrefix))
	}
	return render.New(printer, rt.logger, opts...), nil
}

// Close releases everything in reverse order of creation.
func (rt *components) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("Failed to release resource", "error", err.Error())
		}
	}
	rt.closers = nil
}
