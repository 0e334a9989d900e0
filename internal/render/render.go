// Package render lays structured resumes out as HTML and prints them to
// PDF through headless Chrome.
package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"resuscan/internal/errors"
	"resuscan/internal/observability"
	"resuscan/internal/types"
)

// Letter paper in inches.
const (
	paperWidth  = 8.5
	paperHeight = 11
)

// Printer turns a laid out HTML page into PDF bytes.
type Printer interface {
	PrintPDF(ctx context.Context, html string, tpl types.Template) ([]byte, error)
}

// Uploader stores rendered documents. objectstore.Store satisfies it.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// ChromePrinter prints with a fresh headless Chrome per document.
type ChromePrinter struct {
	ExecPath string
	Timeout  time.Duration
}

// PrintPDF loads html into a blank tab and prints it on letter paper with
// the template margins.
func (c ChromePrinter) PrintPDF(ctx context.Context, html string, tpl types.Template) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if c.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
		defer cancel()
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(false).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginLeft(tpl.Margins[0]).
				WithMarginRight(tpl.Margins[1]).
				WithMarginTop(tpl.Margins[2]).
				WithMarginBottom(tpl.Margins[3]).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome pdf printing failed: %w", err)
	}
	return pdf, nil
}

// Renderer produces resume documents.
type Renderer struct {
	printer  Printer
	uploader Uploader
	prefix   string
	logger   *errors.Logger
	om       *observability.ObservabilityManager
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithUploader stores every rendered document under prefix.
func WithUploader(u Uploader, prefix string) Option {
	return func(r *Renderer) {
		r.uploader = u
		r.prefix = prefix
	}
}

// WithObservability records render spans and counts.
func WithObservability(om *observability.ObservabilityManager) Option {
	return func(r *Renderer) { r.om = om }
}

func New(printer Printer, logger *errors.Logger, opts ...Option) *Renderer {
	r := &Renderer{printer: printer, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document is a rendered PDF and, when uploaded, its object key.
type Document struct {
	Template string
	Data     []byte
	Key      string
}

// FileName is the download name for a document rendered from name.
func FileName(name string, at time.Time) string {
	base := "resume"
	if name = strings.TrimSpace(name); name != "" {
		base = strings.ReplaceAll(name, " ", "_")
	}
	return fmt.Sprintf("%s_%s.pdf", base, at.Format("20060102_150405"))
}

// Render prints resume with the named template.
func (r *Renderer) Render(ctx context.Context, resume types.Resume, templateID string) ([]byte, error) {
	doc, err := r.RenderDocument(ctx, resume, templateID)
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

// RenderDocument prints resume and uploads the result when an uploader is set.
func (r *Renderer) RenderDocument(ctx context.Context, resume types.Resume, templateID string) (Document, error) {
	tpl := Lookup(templateID)

	ctx, span := r.om.Tracer("resuscan.render").Start(ctx, "render.pdf")
	defer span.End()
	span.SetAttributes(attribute.String("render.template", tpl.ID))

	html, err := BuildHTML(resume, tpl)
	if err != nil {
		r.om.RecordBusinessMetric(ctx, observability.MetricDocumentRendered, false, attribute.String("template", tpl.ID))
		return Document{}, errors.NewInternalError(errors.ErrCodeRenderFailed, "failed to build resume layout", err)
	}

	data, err := r.printer.PrintPDF(ctx, html, tpl)
	if err != nil {
		span.RecordError(err)
		r.om.RecordBusinessMetric(ctx, observability.MetricDocumentRendered, false, attribute.String("template", tpl.ID))
		return Document{}, errors.NewInternalError(errors.ErrCodeRenderFailed, "failed to render resume pdf", err).
			WithContext("template", tpl.ID)
	}

	doc := Document{Template: tpl.ID, Data: data}
	if r.uploader != nil {
		doc.Key = r.prefix + uuid.NewString() + ".pdf"
		if err := r.uploader.Put(ctx, doc.Key, "application/pdf", data); err != nil {
			r.om.RecordBusinessMetric(ctx, observability.MetricDocumentRendered, false, attribute.String("template", tpl.ID))
			return Document{}, err
		}
	}

	r.om.RecordBusinessMetric(ctx, observability.MetricDocumentRendered, true, attribute.String("template", tpl.ID))
	if r.logger != nil {
		r.logger.Debug("Rendered resume", "template", tpl.ID, "bytes", len(data), "key", doc.Key)
	}
	return doc, nil
}
