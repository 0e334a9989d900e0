package render

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/errors"
	"resuscan/internal/types"
)

func sampleResume() types.Resume {
	return types.Resume{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Location: "Berlin",
		LinkedIn: "linkedin.com/in/jane",
		Summary:  "Backend engineer",
		Experience: []types.Experience{
			{Title: "Senior Engineer", Company: "Acme", Dates: "2020-2024", Description: "Built APIs"},
			{Title: "Engineer"},
		},
		Education: []types.Education{{Degree: "BSc Computer Science", School: "TU Berlin", Dates: "2016"}},
		Skills:    []string{"Go", "SQL", "Docker"},
		Projects:  []types.ResumeProject{{Name: "resuscan", Description: "ATS scanner"}},
	}
}

type fakePrinter struct {
	html string
	tpl  types.Template
	err  error
}

func (f *fakePrinter) PrintPDF(_ context.Context, html string, tpl types.Template) ([]byte, error) {
	f.html, f.tpl = html, tpl
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeUploader struct {
	key, contentType string
	data             []byte
}

func (f *fakeUploader) Put(_ context.Context, key, contentType string, data []byte) error {
	f.key, f.contentType, f.data = key, contentType, data
	return nil
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "modern", Lookup("modern").ID)
	assert.Equal(t, "professional", Lookup("").ID)
	assert.Equal(t, "professional", Lookup("fancy").ID)
	assert.True(t, Exists("minimal"))
	assert.False(t, Exists("fancy"))
}

func TestList(t *testing.T) {
	list := List()
	require.Len(t, list, 3)
	assert.Equal(t, "professional", list[0].ID)
	assert.Equal(t, "modern", list[1].ID)
	assert.Equal(t, "minimal", list[2].ID)
	for _, tpl := range list {
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Description)
	}
}

func TestBuildHTML(t *testing.T) {
	html, err := BuildHTML(sampleResume(), Lookup("professional"))
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Jane Doe</h1>")
	assert.Contains(t, html, "jane@example.com | Berlin | linkedin.com/in/jane")
	assert.Contains(t, html, "<h2>SUMMARY</h2>")
	assert.Contains(t, html, "<b>Senior Engineer</b> - Acme | 2020-2024")
	assert.Contains(t, html, "<p>Built APIs</p>")
	assert.Contains(t, html, "<p><b>Engineer</b></p>")
	assert.Contains(t, html, "<b>BSc Computer Science</b> - TU Berlin | 2016")
	assert.Contains(t, html, "<p>Go, SQL, Docker</p>")
	assert.Contains(t, html, "<b>resuscan</b> - ATS scanner")

	assert.Contains(t, html, "font-size: 11pt")
	assert.Contains(t, html, "h2 { font-size: 13pt")
	assert.Contains(t, html, "line-height: 13.2pt")
	assert.Contains(t, html, "margin-bottom: 0.2in")

	order := []string{"SUMMARY", "EXPERIENCE", "EDUCATION", "SKILLS", "PROJECTS"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(html, "<h2>"+heading+"</h2>")
		require.Greater(t, idx, last, heading)
		last = idx
	}
}

func TestBuildHTMLOmitsEmptySections(t *testing.T) {
	html, err := BuildHTML(types.Resume{Name: "Jane Doe", Skills: []string{"Go"}}, Lookup("minimal"))
	require.NoError(t, err)

	assert.NotContains(t, html, "SUMMARY")
	assert.NotContains(t, html, "EXPERIENCE")
	assert.NotContains(t, html, "EDUCATION")
	assert.NotContains(t, html, "PROJECTS")
	assert.NotContains(t, html, `class="contact"`)
	assert.Contains(t, html, "<h2>SKILLS</h2>")
}

func TestBuildHTMLEscapes(t *testing.T) {
	html, err := BuildHTML(types.Resume{Name: "<script>alert(1)</script>", Summary: "R&D"}, Lookup(""))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "R&amp;D")
}

func TestRenderUsesPrinter(t *testing.T) {
	printer := &fakePrinter{}
	r := New(printer, nil)

	data, err := r.Render(context.Background(), sampleResume(), "modern")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Equal(t, "modern", printer.tpl.ID)
	assert.Contains(t, printer.html, "<h1>Jane Doe</h1>")
}

func TestRenderDocumentUploads(t *testing.T) {
	uploader := &fakeUploader{}
	r := New(&fakePrinter{}, nil, WithUploader(uploader, "rendered/"))

	doc, err := r.RenderDocument(context.Background(), sampleResume(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, "professional", doc.Template)
	assert.True(t, strings.HasPrefix(doc.Key, "rendered/"))
	assert.True(t, strings.HasSuffix(doc.Key, ".pdf"))
	assert.Equal(t, doc.Key, uploader.key)
	assert.Equal(t, "application/pdf", uploader.contentType)
	assert.Equal(t, doc.Data, uploader.data)
}

func TestRenderPrinterFailure(t *testing.T) {
	r := New(&fakePrinter{err: stderrors.New("chrome not found")}, nil)

	_, err := r.Render(context.Background(), sampleResume(), "professional")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeRenderFailed, appErr.Code)
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "resume_20240309_140507.pdf", FileName("", at))
	assert.Equal(t, "Backend_Role_v2_20240309_140507.pdf", FileName("Backend Role v2", at))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "11", formatNumber(11))
	assert.Equal(t, "13.2", formatNumber(11*1.2))
	assert.Equal(t, "0.15", formatNumber(0.15))
}
