package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/errors"
)

type fakeRecognizer struct {
	gotMIME string
	text    string
}

func (f *fakeRecognizer) RecognizeText(_ context.Context, mimeType string, _ []byte) (string, error) {
	f.gotMIME = mimeType
	return f.text, nil
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		contentType string
		data        []byte
		want        Kind
		wantMIME    string
		ok          bool
	}{
		{name: "content type wins", file: "resume.txt", contentType: "application/pdf", want: KindPDF, wantMIME: "application/pdf", ok: true},
		{name: "content type parameters ignored", file: "", contentType: "text/plain; charset=utf-8", want: KindText, wantMIME: "text/plain", ok: true},
		{name: "docx content type", file: "cv", contentType: docxMIME, want: KindDOCX, wantMIME: docxMIME, ok: true},
		{name: "extension when type is generic", file: "CV.DOCX", contentType: "application/octet-stream", want: KindDOCX, ok: true},
		{name: "image extension carries mime", file: "scan.jpg", want: KindImage, wantMIME: "image/jpeg", ok: true},
		{name: "htm extension", file: "cv.htm", want: KindHTML, ok: true},
		{name: "sniffed pdf", file: "upload", data: []byte("%PDF-1.7\n"), want: KindPDF, wantMIME: "application/pdf", ok: true},
		{name: "sniffed png", file: "upload", data: []byte("\x89PNG\r\n\x1a\n0000"), want: KindImage, wantMIME: "image/png", ok: true},
		{name: "unknown", file: "resume.rtf", contentType: "application/rtf", data: []byte{0x00, 0x01, 0x02}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, mediaType, ok := DetectKind(tt.file, tt.contentType, tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
			if tt.wantMIME != "" {
				assert.Equal(t, tt.wantMIME, mediaType)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	e := New(0, nil, nil)

	got, err := e.Extract(context.Background(), "cv.txt", "", []byte("Jane Doe\n\tPython"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\tPython", got)
}

func TestExtractHTML(t *testing.T) {
	page := `<html><head><title>CV</title><style>p { color: red }</style></head>
<body>
  <h1>Jane Doe</h1>
  <p>Backend   engineer<br>Berlin</p>
  <ul><li>Built APIs</li><li> Led team </li></ul>
  <script>track()</script>
</body></html>`

	got, err := New(0, nil, nil).Extract(context.Background(), "cv.html", "text/html", []byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend engineer\nBerlin\n• Built APIs\n• Led team", got)
}

func TestExtractDOCX(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Skills</w:t><w:tab/><w:t>Go &amp; SQL</w:t></w:r></w:p>`+
			`<w:p></w:p>`)

	got, err := New(0, nil, nil).Extract(context.Background(), "cv.docx", "", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\tGo & SQL", got)
}

func TestExtractImageUsesRecognizer(t *testing.T) {
	ocr := &fakeRecognizer{text: "JANE DOE\nEngineer"}

	got, err := New(0, ocr, nil).Extract(context.Background(), "scan.png", "", []byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	assert.Equal(t, "JANE DOE\nEngineer", got)
	assert.Equal(t, "image/png", ocr.gotMIME)
}

func TestExtractImageWithoutRecognizer(t *testing.T) {
	_, err := New(0, nil, nil).Extract(context.Background(), "scan.png", "image/png", []byte("x"))
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnsupportedFile, appErr.Code)
}

func TestExtractErrors(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		_, err := New(0, nil, nil).Extract(context.Background(), "cv.rtf", "application/rtf", []byte{0x00, 0x01})
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
		assert.Equal(t, errors.ErrCodeUnsupportedFile, appErr.Code)
		assert.Contains(t, err.Error(), "unsupported file type")
	})

	t.Run("too large", func(t *testing.T) {
		_, err := New(4, nil, nil).Extract(context.Background(), "cv.txt", "", []byte("12345"))
		require.Error(t, err)
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, errors.ErrCodeFileTooLarge, appErr.Code)
	})

	t.Run("corrupt pdf", func(t *testing.T) {
		_, err := New(0, nil, nil).Extract(context.Background(), "cv.pdf", "", []byte("not a pdf"))
		require.Error(t, err)
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, errors.ErrCodeExtractFailed, appErr.Code)
	})

	t.Run("corrupt docx", func(t *testing.T) {
		_, err := New(0, nil, nil).Extract(context.Background(), "cv.docx", "", []byte("not a zip"))
		require.Error(t, err)
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, errors.ErrCodeExtractFailed, appErr.Code)
	})
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe"), 0600))

	got, err := New(0, nil, nil).ExtractFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got)

	_, err = New(0, nil, nil).ExtractFile(context.Background(), filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFileNotFound, appErr.Code)

	_, err = New(3, nil, nil).ExtractFile(context.Background(), path)
	require.Error(t, err)
	appErr, _ = errors.AsAppError(err)
	assert.Equal(t, errors.ErrCodeFileTooLarge, appErr.Code)
}
