package common

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/errors"
	"resuscan/internal/types"
)

type fakeExtractor struct {
	path string
}

func (f *fakeExtractor) ExtractFile(_ context.Context, path string) (string, error) {
	f.path = path
	return "extracted " + path, nil
}

func TestResumeInputLoad(t *testing.T) {
	ctx := context.Background()

	ex := &fakeExtractor{}
	text, err := ResumeInput{File: "cv.pdf"}.Load(ctx, ex)
	require.NoError(t, err)
	assert.Equal(t, "extracted cv.pdf", text)
	assert.Equal(t, "cv.pdf", ex.path)

	text, err = ResumeInput{Text: "Python developer"}.Load(ctx, ex)
	require.NoError(t, err)
	assert.Equal(t, "Python developer", text)

	_, err = ResumeInput{File: "cv.pdf", Text: "x"}.Load(ctx, ex)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = ResumeInput{Text: "   "}.Load(ctx, ex)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestFileProcessor(t *testing.T) {
	dir := t.TempDir()
	fp := NewFileProcessor(nil)

	out := filepath.Join(dir, "nested", "out.txt")
	require.NoError(t, fp.WriteFile(out, []byte("hello")))

	data, err := fp.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fp.ReadFile(filepath.Join(dir, "missing.txt"))
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFileNotFound, appErr.Code)

	_, err = fp.ReadFile(dir)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, appErr.Code)
}

func TestReadJSON(t *testing.T) {
	dir := t.TempDir()
	fp := NewFileProcessor(nil)

	good := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"Jane","skills":["Go"]}`), 0o600))
	var resume types.Resume
	require.NoError(t, fp.ReadJSON(good, &resume))
	assert.Equal(t, "Jane", resume.Name)
	assert.Equal(t, []string{"Go"}, resume.Skills)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	err := fp.ReadJSON(bad, &resume)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidFormat, appErr.Code)
}

func TestHandleOutput(t *testing.T) {
	var buf bytes.Buffer
	oh := NewOutputHandlerWithWriter(nil, &buf)

	require.NoError(t, oh.HandleOutput(types.TipList{Tips: []string{"one"}}, CommandConfig{OutputFormat: "text"}))
	assert.Contains(t, buf.String(), "1. one")

	file := filepath.Join(t.TempDir(), "tips.json")
	require.NoError(t, oh.HandleOutput(types.TipList{Tips: []string{"one"}}, CommandConfig{OutputFile: file, OutputFormat: "json"}))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tips"`)

	err = oh.HandleOutput(types.TipList{}, CommandConfig{OutputFormat: "xml"})
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidFormat, appErr.Code)
}

func TestWriteDocument(t *testing.T) {
	oh := NewOutputHandlerWithWriter(nil, &bytes.Buffer{})

	assert.Error(t, oh.WriteDocument("", []byte("%PDF")))

	file := filepath.Join(t.TempDir(), "out", "resume.pdf")
	require.NoError(t, oh.WriteDocument(file, []byte("%PDF")))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestRunCommandTo(t *testing.T) {
	var buf bytes.Buffer
	oh := NewOutputHandlerWithWriter(nil, &buf)
	ctx := context.Background()

	err := RunCommandTo(ctx, nil, oh, CommandConfig{OutputFormat: "json"}, "tips",
		func(context.Context) (types.TipList, error) {
			return types.TipList{Tips: []string{"a"}}, nil
		})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"a"`)

	boom := stderrors.New("boom")
	err = RunCommandTo(ctx, nil, oh, CommandConfig{OutputFormat: "json"}, "tips",
		func(context.Context) (types.TipList, error) { return types.TipList{}, boom })
	assert.ErrorIs(t, err, boom)
}
