// Package formatters renders domain results as JSON, plain text or markdown.
package formatters

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a registry with JSON for every type and text
// and markdown for each domain result.
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	for _, f := range textFormatters() {
		registry.RegisterFormatter("text", f.SupportedType(), f)
	}
	for _, f := range markdownFormatters() {
		registry.RegisterFormatter("markdown", f.SupportedType(), f)
	}

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := typeName(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats, sorted.
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func typeName(data any) string {
	if data == nil {
		return "any"
	}
	return reflect.TypeOf(data).Name()
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData) + "\n", nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// typed adapts a function over one concrete result type to Formatter.
type typed[T any] struct {
	render func(T) string
}

func (f typed[T]) Format(data any) (string, error) {
	v, ok := data.(T)
	if !ok {
		var zero T
		return "", fmt.Errorf("expected %T, got %T", zero, data)
	}
	return f.render(v), nil
}

func (f typed[T]) SupportedType() string {
	var zero T
	return reflect.TypeOf(zero).Name()
}

var GlobalRegistry = NewFormatterRegistry()
