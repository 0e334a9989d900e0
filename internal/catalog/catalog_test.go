package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/errors"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("debug")
	require.NoError(t, err)
	return logger
}

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	assert.Len(t, cat.ATSKeywords("software_engineer"), 22)
	assert.Len(t, cat.ATSKeywords("data_scientist"), 20)
	assert.Nil(t, cat.ATSKeywords("astronaut"))
	assert.Equal(t, "python", cat.RequiredSkills("software engineer")[0])
	assert.Len(t, cat.Vocabulary(), 30)
	assert.Equal(t, "python", cat.FallbackKey())
	assert.Equal(t, []string{"data_scientist", "marketing", "product_manager", "software_engineer"}, cat.JobCategories())

	keys := make([]string, 0)
	for _, r := range cat.Resources() {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"python", "javascript", "react", "sql", "machine learning", "aws"}, keys)
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	cat := Default()

	kw := cat.ATSKeywords("software_engineer")
	kw[0] = "mutated"
	assert.Equal(t, "python", cat.ATSKeywords("software_engineer")[0])

	res, ok := cat.Resource("python")
	require.True(t, ok)
	res.Projects[0].TechStack[0] = "mutated"
	again, _ := cat.Resource("python")
	assert.Equal(t, "Flask/Django", again.Projects[0].TechStack[0])
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Software Engineer", "software_engineer"},
		{"software_engineer", "software_engineer"},
		{"DATA SCIENTIST", "data_scientist"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.in))
		})
	}
}

func TestParseOverride(t *testing.T) {
	doc := `{
		"ats_keywords": {"Site Reliability": ["Terraform", "prometheus"]},
		"fallback_resource": "sql"
	}`

	cat, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"terraform", "prometheus"}, cat.ATSKeywords("site_reliability"))
	assert.Nil(t, cat.ATSKeywords("software_engineer"))
	assert.Len(t, cat.RequiredSkills("software engineer"), 14, "untouched sections keep defaults")
	assert.Equal(t, "sql", cat.FallbackKey())
}

func TestParseOverrideRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"ats_keywords":`},
		{"unknown section", `{"colors": []}`},
		{"wrong type", `{"skill_vocabulary": "python"}`},
		{"resource without key", `{"resources": [{"courses": []}]}`},
		{"unknown fallback", `{"fallback_resource": "cobol"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFileNotFound, appErr.Code)
}

func TestStaticSource(t *testing.T) {
	assert.Same(t, Default(), NewStatic(nil).Current())

	cat, err := Parse([]byte(`{"skill_vocabulary": ["go"]}`))
	require.NoError(t, err)
	assert.Same(t, cat, NewStatic(cat).Current())
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skill_vocabulary": ["go"]}`), 0o600))

	w, err := NewWatcher(path, 20*time.Millisecond, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, w.Current().Vocabulary())

	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	assert.Error(t, w.Start(), "second start must fail")

	require.NoError(t, os.WriteFile(path, []byte(`{"skill_vocabulary": ["rust", "go"]}`), 0o600))
	require.Eventually(t, func() bool {
		return len(w.Current().Vocabulary()) == 2
	}, 5*time.Second, 20*time.Millisecond)

	before := w.Current()
	require.NoError(t, os.WriteFile(path, []byte(`{"skill_vocabulary": 3}`), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Same(t, before, w.Current(), "invalid documents keep the previous snapshot")
}

func TestWatcherRestartsAfterStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skill_vocabulary": ["go"]}`), 0o600))

	w, err := NewWatcher(path, 20*time.Millisecond, testLogger(t))
	require.NoError(t, err)

	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(path, []byte(`{"skill_vocabulary": ["rust", "go", "sql"]}`), 0o600))
	require.Eventually(t, func() bool {
		return len(w.Current().Vocabulary()) == 3
	}, 5*time.Second, 20*time.Millisecond)
}
