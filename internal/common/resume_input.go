package common

import (
	"context"
	"strings"

	"resuscan/internal/errors"
)

// FileExtractor reads the text of a document on disk.
type FileExtractor interface {
	ExtractFile(ctx context.Context, path string) (string, error)
}

// ResumeInput names where a command takes its resume text from. Exactly one
// of File and Text must be set.
type ResumeInput struct {
	File string
	Text string
}

// Load returns the resume text, extracting File when it is set.
func (in ResumeInput) Load(ctx context.Context, extractor FileExtractor) (string, error) {
	switch {
	case in.File != "" && in.Text != "":
		return "", errors.NewValidationError(errors.ErrCodeInvalidInput, "use either --file or --text, not both", nil)
	case in.File != "":
		return extractor.ExtractFile(ctx, in.File)
	case strings.TrimSpace(in.Text) != "":
		return in.Text, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidInput, "a resume is required: pass --file or --text", nil)
	}
}
