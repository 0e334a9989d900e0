package render

import "resuscan/internal/types"

// DefaultTemplate is used for empty or unknown template ids.
const DefaultTemplate = "professional"

var templateOrder = []string{"professional", "modern", "minimal"}

var templates = map[string]types.Template{
	"professional": {
		ID:          "professional",
		Name:        "Professional",
		Description: "Classic single column layout with generous margins",
		FontSize:    11,
		LineSpacing: 1.2,
		SectionGap:  0.2,
		Margins:     [4]float64{0.75, 0.75, 0.75, 0.75},
	},
	"modern": {
		ID:          "modern",
		Name:        "Modern",
		Description: "Compact layout with tighter margins and larger headings",
		FontSize:    10,
		LineSpacing: 1.3,
		SectionGap:  0.15,
		Margins:     [4]float64{0.6, 0.6, 0.5, 0.5},
	},
	"minimal": {
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Sparse layout with wide margins and extra white space",
		FontSize:    11,
		LineSpacing: 1.4,
		SectionGap:  0.3,
		Margins:     [4]float64{1, 1, 1, 1},
	},
}

// Lookup returns the template with id, falling back to professional.
func Lookup(id string) types.Template {
	if tpl, ok := templates[id]; ok {
		return tpl
	}
	return templates[DefaultTemplate]
}

// Exists reports whether id names a known template.
func Exists(id string) bool {
	_, ok := templates[id]
	return ok
}

// List returns every template in display order.
func List() []types.TemplateSummary {
	out := make([]types.TemplateSummary, 0, len(templateOrder))
	for _, id := range templateOrder {
		tpl := templates[id]
		out = append(out, types.TemplateSummary{ID: tpl.ID, Name: tpl.Name, Description: tpl.Description})
	}
	return out
}
