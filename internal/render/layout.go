package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"resuscan/internal/types"
)

const layoutHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Resume.Name}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: {{.BodySize}}pt; line-height: {{.Leading}}pt; margin: 0; }
h1 { font-size: 16pt; font-weight: bold; text-align: center; margin: 0 0 12pt 0; }
h2 { font-size: {{.HeadingSize}}pt; font-weight: bold; margin: 12pt 0 6pt 0; }
p { margin: 0 0 6pt 0; }
.contact { margin-bottom: 12pt; }
.entry { margin-bottom: 6pt; }
section { margin-bottom: {{.SectionGap}}in; }
</style>
</head>
<body>
{{- with .Resume}}
{{- if .Name}}
<h1>{{.Name}}</h1>
{{- end}}
{{- if $.Contact}}
<p class="contact">{{$.Contact}}</p>
{{- end}}
{{- if .Summary}}
<section>
<h2>SUMMARY</h2>
<p>{{.Summary}}</p>
</section>
{{- end}}
{{- if .Experience}}
<section>
<h2>EXPERIENCE</h2>
{{- range .Experience}}
<div class="entry">
<p><b>{{.Title}}</b>{{if .Company}} - {{.Company}}{{end}}{{if .Dates}} | {{.Dates}}{{end}}</p>
{{- if .Description}}
<p>{{.Description}}</p>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
{{- if .Education}}
<section>
<h2>EDUCATION</h2>
{{- range .Education}}
<div class="entry">
<p><b>{{.Degree}}</b>{{if .School}} - {{.School}}{{end}}{{if .Dates}} | {{.Dates}}{{end}}</p>
</div>
{{- end}}
</section>
{{- end}}
{{- if .Skills}}
<section>
<h2>SKILLS</h2>
<p>{{join .Skills ", "}}</p>
</section>
{{- end}}
{{- if .Projects}}
<section>
<h2>PROJECTS</h2>
{{- range .Projects}}
<div class="entry">
<p><b>{{.Name}}</b>{{if .Description}} - {{.Description}}{{end}}</p>
</div>
{{- end}}
</section>
{{- end}}
{{- end}}
</body>
</html>
`

var layout = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(layoutHTML))

type layoutView struct {
	Resume      types.Resume
	Contact     string
	BodySize    string
	HeadingSize string
	Leading     string
	SectionGap  string
}

// BuildHTML lays resume out with tpl's typography. Empty fields and
// sections are left out.
func BuildHTML(resume types.Resume, tpl types.Template) (string, error) {
	contact := make([]string, 0, 4)
	for _, field := range []string{resume.Email, resume.Phone, resume.Location, resume.LinkedIn} {
		if field != "" {
			contact = append(contact, field)
		}
	}

	view := layoutView{
		Resume:      resume,
		Contact:     strings.Join(contact, " | "),
		BodySize:    formatNumber(tpl.FontSize),
		HeadingSize: formatNumber(tpl.FontSize + 2),
		Leading:     formatNumber(tpl.FontSize * tpl.LineSpacing),
		SectionGap:  formatNumber(tpl.SectionGap),
	}

	var buf bytes.Buffer
	if err := layout.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to lay out resume: %w", err)
	}
	return buf.String(), nil
}

// formatNumber prints up to two decimals without trailing zeros.
func formatNumber(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", v), "0")
	return strings.TrimSuffix(s, ".")
}
