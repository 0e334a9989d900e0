// Package extract turns uploaded resume documents into plain text.
package extract

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"resuscan/internal/errors"
	"resuscan/internal/utils"
)

// Kind is a supported document family.
type Kind string

const (
	KindText  Kind = "text"
	KindPDF   Kind = "pdf"
	KindDOCX  Kind = "docx"
	KindHTML  Kind = "html"
	KindImage Kind = "image"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var kindsByMIME = map[string]Kind{
	"text/plain":            KindText,
	"text/markdown":         KindText,
	"application/pdf":       KindPDF,
	docxMIME:                KindDOCX,
	"text/html":             KindHTML,
	"application/xhtml+xml": KindHTML,
	"image/png":             KindImage,
	"image/jpeg":            KindImage,
	"image/webp":            KindImage,
}

var kindsByExt = map[string]Kind{
	".txt":  KindText,
	".md":   KindText,
	".text": KindText,
	".pdf":  KindPDF,
	".docx": KindDOCX,
	".html": KindHTML,
	".htm":  KindHTML,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".webp": KindImage,
}

var imageMIMEByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// Recognizer reads text out of an image.
type Recognizer interface {
	RecognizeText(ctx context.Context, mimeType string, image []byte) (string, error)
}

// Extractor dispatches documents to the reader for their kind.
type Extractor struct {
	maxSize int64
	ocr     Recognizer
	logger  *errors.Logger
}

// New returns an Extractor. A nil recognizer rejects images; maxSize <= 0
// disables the size check.
func New(maxSize int64, ocr Recognizer, logger *errors.Logger) *Extractor {
	return &Extractor{maxSize: maxSize, ocr: ocr, logger: logger}
}

// DetectKind picks a document kind from the declared content type, then the
// file extension, then the content itself. It also returns the media type
// that should be passed on to a recognizer.
func DetectKind(name, contentType string, data []byte) (Kind, string, bool) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if kind, ok := kindsByMIME[mt]; ok {
			return kind, mt, true
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := kindsByExt[ext]; ok {
		return kind, imageMIMEByExt[ext], true
	}

	if len(data) > 0 {
		sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
		if kind, ok := kindsByMIME[sniffed]; ok {
			return kind, sniffed, true
		}
	}
	return "", "", false
}

// Extract returns the plain text of one document.
func (e *Extractor) Extract(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if e.maxSize > 0 && int64(len(data)) > e.maxSize {
		return "", errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("file %s is %s, limit is %s", name, utils.FormatFileSize(int64(len(data))), utils.FormatFileSize(e.maxSize)), nil)
	}

	kind, mediaType, ok := DetectKind(name, contentType, data)
	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile, "unsupported file type", nil).
			WithContext("file", name).
			WithContext("content_type", contentType)
	}

	if e.logger != nil {
		e.logger.Debug("Extracting document text", "file", name, "kind", kind, "bytes", len(data))
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindText:
		text = string(data)
	case KindPDF:
		text, err = pdfText(data)
	case KindDOCX:
		text, err = docxText(data)
	case KindHTML:
		text, err = htmlText(data)
	case KindImage:
		if e.ocr == nil {
			return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
				"image uploads need a configured text recognizer", nil).WithContext("file", name)
		}
		text, err = e.ocr.RecognizeText(ctx, mediaType, data)
		if err != nil {
			return "", err
		}
	}
	if err != nil {
		return "", errors.NewValidationError(errors.ErrCodeExtractFailed,
			fmt.Sprintf("failed to extract text from %s", name), err).WithContext("kind", string(kind))
	}
	return text, nil
}

// ExtractFile reads and extracts a file from disk.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound, fmt.Sprintf("File not found: %s", path), err)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, fmt.Sprintf("Cannot read file: %s", path), err)
	}
	if e.maxSize > 0 && info.Size() > e.maxSize {
		return "", errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("file %s is %s, limit is %s", path, utils.FormatFileSize(info.Size()), utils.FormatFileSize(e.maxSize)), nil)
	}

	if !utils.IsDocumentFile(path) && e.logger != nil {
		e.logger.Debug("Unrecognized file extension, detecting type from content", "file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, fmt.Sprintf("Cannot read file: %s", path), err)
	}
	return e.Extract(ctx, filepath.Base(path), "", data)
}
