package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/types"
)

const sampleResume = `Jane Doe
jane@example.com | (555) 123-4567

EXPERIENCE
Software Engineer, Acme Corp
- Developed REST APIs in Python and Go
- Managed deployments with Docker and Kubernetes

EDUCATION
BSc Computer Science

SKILLS
Python, Go, Docker, Kubernetes, SQL, Git
`

// execute runs the CLI against an isolated config in a temp directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	cfg := "app:\n  logLevel: error\nstorage:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "versions.db") +
		"\nserver:\n  jwt:\n    secret: test-secret\n    issuer: resuscan-test\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0o600))
	t.Setenv("RESUSCAN_AI_APIKEY", "")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "--text", sampleResume, "--job-title", "software engineer", "--format", "json")
	require.NoError(t, err)

	var score types.AtsScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Greater(t, score.Overall, 0.0)
	assert.LessOrEqual(t, score.Overall, 100.0)
	assert.Contains(t, score.MatchedKeywords, "python")
}

func TestScoreCommandFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(file, []byte(sampleResume), 0o600))

	out, err := execute(t, "score", "--file", file, "--job-title", "software engineer", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "=== ATS SCORE ===")
}

func TestScoreCommandRequiresResume(t *testing.T) {
	_, err := execute(t, "score", "--job-title", "software engineer")
	require.Error(t, err)
}

func TestRejectsUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "score", "--text", sampleResume, "--job-title", "x", "--format", "xml")
	require.ErrorContains(t, err, "unsupported output format")
}

func TestSkillGapCommand(t *testing.T) {
	out, err := execute(t, "skillgap", "--text", sampleResume, "--job-title", "software engineer")
	require.NoError(t, err)

	var gap types.SkillGapResult
	require.NoError(t, json.Unmarshal([]byte(out), &gap))
	assert.Equal(t, gap.TotalSkillsRequired, gap.SkillsYouHave+gap.SkillsToLearn)
}

func TestTipsCommand(t *testing.T) {
	out, err := execute(t, "tips", "--keyword-score", "10", "--format-score", "10",
		"--readability-score", "10", "--structure-score", "10", "--format", "json")
	require.NoError(t, err)

	var tips types.TipList
	require.NoError(t, json.Unmarshal([]byte(out), &tips))
	assert.NotEmpty(t, tips.Tips)

	_, err = execute(t, "tips", "--keyword-score", "120")
	require.ErrorContains(t, err, "between 0 and 100")
}

func TestRecommendCommand(t *testing.T) {
	out, err := execute(t, "recommend", "--skills", "python,docker", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Courses")
}

func TestAnalyzeWithoutRewriter(t *testing.T) {
	out, err := execute(t, "analyze", "--text", sampleResume, "--job-title", "software engineer")
	require.NoError(t, err)

	var report types.ComprehensiveAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "software engineer", report.JobTitle)
	assert.True(t, report.Bullets.Skipped)
}

func TestImproveWithoutRewriter(t *testing.T) {
	_, err := execute(t, "improve", "--bullet", "did stuff", "--job-title", "software engineer")
	require.ErrorContains(t, err, "not configured")
}

func TestTemplatesCommand(t *testing.T) {
	out, err := execute(t, "templates", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "professional")
	assert.Contains(t, out, "modern")
	assert.Contains(t, out, "minimal")
}

func TestVersionsLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("app:\n  logLevel: error\nstorage:\n  dsn: "+filepath.Join(dir, "v.db")+"\n"), 0o600))
	data := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"name":"Jane Doe","skills":["Go"]}`), 0o600))

	runCLI := func(args ...string) string {
		root := NewRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--config", cfgFile}, args...))
		require.NoError(t, root.ExecuteContext(context.Background()))
		return out.String()
	}

	var saved types.Version
	require.NoError(t, json.Unmarshal([]byte(runCLI("versions", "save", "--name", "Backend", "--job-title", "software engineer", "--data", data)), &saved))
	assert.NotEmpty(t, saved.ID)

	var list types.VersionList
	require.NoError(t, json.Unmarshal([]byte(runCLI("versions", "list")), &list))
	require.Len(t, list.Versions, 1)
	assert.Equal(t, saved.ID, list.Versions[0].ID)

	var got types.Version
	require.NoError(t, json.Unmarshal([]byte(runCLI("versions", "get", saved.ID)), &got))
	assert.Equal(t, "Jane Doe", got.ResumeData.Name)

	assert.Contains(t, runCLI("versions", "delete", saved.ID), "Backend")
	require.NoError(t, json.Unmarshal([]byte(runCLI("versions", "list")), &list))
	assert.Empty(t, list.Versions)
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "--subject", "ci")
	require.NoError(t, err)

	raw := bytes.TrimSpace([]byte(out))
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(string(raw), claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Subject)
	assert.Equal(t, "resuscan-test", claims.Issuer)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "resuscan version dev")
}
