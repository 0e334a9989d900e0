package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resuscan/internal/errors"
)

const overrideSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "ats_keywords": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"type": "string", "minLength": 1}}
    },
    "required_skills": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"type": "string", "minLength": 1}}
    },
    "skill_vocabulary": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "resources": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "courses": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "platform": {"type": "string"},
                "description": {"type": "string"},
                "url": {"type": "string"},
                "duration": {"type": "string"},
                "level": {"type": "string"}
              }
            }
          },
          "projects": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "description": {"type": "string"},
                "skills_developed": {"type": "array", "items": {"type": "string"}},
                "difficulty": {"type": "string"},
                "duration": {"type": "string"},
                "tech_stack": {"type": "array", "items": {"type": "string"}}
              }
            }
          }
        }
      }
    },
    "fallback_resource": {"type": "string", "minLength": 1}
  }
}`

// overrideFile is the on-disk shape of a catalog override. Any section left
// out keeps its built-in value.
type overrideFile struct {
	ATSKeywords      map[string][]string `json:"ats_keywords"`
	RequiredSkills   map[string][]string `json:"required_skills"`
	Vocabulary       []string            `json:"skill_vocabulary"`
	Resources        []Resource          `json:"resources"`
	FallbackResource string              `json:"fallback_resource"`
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation found in an override document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog override failed validation:")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// Validate checks data against the override JSON schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(overrideSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeCatalogInvalid, "catalog override is not valid JSON", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{}
	for _, re := range result.Errors() {
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	return errors.NewValidationError(errors.ErrCodeCatalogInvalid, "catalog override failed schema validation", schemaErr)
}

// Parse validates an override document and merges it over the built-in
// catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc overrideFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeCatalogInvalid, "failed to decode catalog override", err)
	}

	base := Default()
	ats := base.atsKeywords
	if doc.ATSKeywords != nil {
		ats = make(map[string][]string, len(doc.ATSKeywords))
		for k, v := range doc.ATSKeywords {
			ats[NormalizeCategory(k)] = lowerAll(v)
		}
	}

	required := base.requiredSkills
	if doc.RequiredSkills != nil {
		required = make(map[string][]string, len(doc.RequiredSkills))
		for k, v := range doc.RequiredSkills {
			required[strings.ToLower(k)] = lowerAll(v)
		}
	}

	vocabulary := base.vocabulary
	if doc.Vocabulary != nil {
		vocabulary = lowerAll(doc.Vocabulary)
	}

	resources := base.resources
	if doc.Resources != nil {
		resources = make([]Resource, 0, len(doc.Resources))
		for _, r := range doc.Resources {
			r.Key = strings.ToLower(r.Key)
			resources = append(resources, r)
		}
	}

	fallback := base.fallbackKey
	if doc.FallbackResource != "" {
		fallback = strings.ToLower(doc.FallbackResource)
	}

	cat := build(ats, required, vocabulary, resources, fallback)
	if _, ok := cat.Resource(cat.fallbackKey); !ok && len(cat.resources) > 0 {
		return nil, errors.NewValidationError(errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("fallback resource %q is not in the resource catalog", cat.fallbackKey), nil)
	}
	return cat, nil
}

// Load reads and parses an override file.
func Load(path string) (*Catalog, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "failed to resolve catalog path", err).
			WithContext("path", path)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "catalog override not found", err).
				WithContext("path", absPath)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read catalog override", err).
			WithContext("path", absPath)
	}
	return Parse(data)
}

// NormalizeCategory turns a job title into an ATS keyword key: lowercase
// with spaces replaced by underscores.
func NormalizeCategory(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
