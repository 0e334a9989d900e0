package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks format against the configured formats. An
// empty list allows anything the formatter registry accepts.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}
