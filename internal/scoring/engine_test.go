package scoring

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/catalog"
	"resuscan/internal/types"
)

var sampleResumes = []string{
	"",
	"   ",
	"python, react, sql",
	wellFormedBullets,
	"JANE DOE\njane@example.com | linkedin.com/in/jane\n\nSUMMARY\nBackend engineer.\n\nEXPERIENCE\nAcme Inc, 2019 - Present\n" + wellFormedBullets +
		"\n- Built microservices with Docker, Kubernetes and AWS.\n- Managed CI/CD in Jenkins; tracked work in Jira and Confluence.\n\nEDUCATION\nBSc Computer Science, 2015\n\nSKILLS\nPython, JavaScript, Node.js, SQL, Git, REST, GraphQL, Agile, Scrum, TDD",
	"╔═══╗\n║ X ║\n╚═══╝\n**Résumé**\t\t***",
	strings.Repeat("Led managed developed ", 40),
	"Google Analytics, SEO, SEM, content marketing, social media, HubSpot, Salesforce CRM, A/B testing",
}

var sampleTitles = []string{
	"software_engineer", "Software Engineer", "data scientist", "product_manager", "marketing", "astronaut", "",
}

func TestScoreATSKeywordExample(t *testing.T) {
	e := New(nil)

	got := e.ScoreATS("python, react, sql", "software_engineer")

	assert.Equal(t, 22, got.TotalKeywordsChecked)
	assert.Equal(t, 3, got.KeywordsMatched)
	assert.Equal(t, []string{"python", "react", "sql"}, got.MatchedKeywords)
	assert.Equal(t, 13.64, got.Keyword)
	assert.Len(t, got.MissingKeywords, MaxMissingKeywords)
	assert.Equal(t, "javascript", got.MissingKeywords[0])
	assert.Equal(t, "13.6/100", got.ScoreBreakdown.Keywords)
}

func TestScoreATSNormalizesJobTitle(t *testing.T) {
	e := New(nil)

	a := e.ScoreATS("python, react, sql", "Software Engineer")
	b := e.ScoreATS("python, react, sql", "software_engineer")
	assert.Equal(t, a, b)
}

func TestScoreATSUnknownTitle(t *testing.T) {
	e := New(nil)

	got := e.ScoreATS(wellFormedBullets, "astronaut")

	assert.Equal(t, 0.0, got.Keyword)
	assert.Empty(t, got.MatchedKeywords)
	assert.Empty(t, got.MissingKeywords)
	assert.NotNil(t, got.MatchedKeywords)
	assert.NotNil(t, got.MissingKeywords)
	assert.Equal(t, 0, got.TotalKeywordsChecked)

	gap := e.AnalyzeSkillGap(wellFormedBullets, "astronaut")
	assert.Empty(t, gap.RequiredSkills)
	assert.Equal(t, 0.0, gap.SkillMatchPercent)
}

func TestScoreATSEmptyText(t *testing.T) {
	e := New(nil)

	got := e.ScoreATS("", "software_engineer")

	assert.Equal(t, 0.0, got.Readability)
	assert.Equal(t, 100.0, got.Format)
	assert.Equal(t, 25.0, got.Structure)
	assert.Equal(t, 0.0, got.Keyword)
	assert.Equal(t, 32.5, got.Overall)
}

func TestScoreATSProperties(t *testing.T) {
	e := New(nil)

	for _, text := range sampleResumes {
		for _, title := range sampleTitles {
			got := e.ScoreATS(text, title)

			for name, v := range map[string]float64{
				"overall":     got.Overall,
				"keyword":     got.Keyword,
				"format":      got.Format,
				"readability": got.Readability,
				"structure":   got.Structure,
			} {
				assert.GreaterOrEqual(t, v, 0.0, "%s for %q/%q", name, text, title)
				assert.LessOrEqual(t, v, 100.0, "%s for %q/%q", name, text, title)
			}

			weighted := Overall(types.ComponentScores{
				Keyword:     got.Keyword,
				Format:      got.Format,
				Readability: got.Readability,
				Structure:   got.Structure,
			})
			assert.InDelta(t, weighted, got.Overall, 0.011, "weights for %q/%q", text, title)

			assert.LessOrEqual(t, len(got.MissingKeywords), MaxMissingKeywords)
			assert.LessOrEqual(t, len(got.ImprovementTips), MaxTips)
		}
	}
}

func TestKeywordPartitionCoversCatalog(t *testing.T) {
	e := New(nil)

	for _, text := range sampleResumes {
		for _, title := range e.Catalog().JobCategories() {
			keywords, matched, missing := e.partitionKeywords(text, title)

			seen := make(map[string]bool)
			for _, kw := range matched {
				seen[kw] = true
			}
			for _, kw := range missing {
				assert.False(t, seen[kw], "%q is both matched and missing", kw)
				seen[kw] = true
			}
			assert.Len(t, seen, len(keywords))
			assert.ElementsMatch(t, keywords, append(append([]string{}, matched...), missing...))
		}
	}
}

func TestScoreATSIsIdempotent(t *testing.T) {
	e := New(nil)

	for _, text := range sampleResumes {
		first, err := json.Marshal(e.ScoreATS(text, "software_engineer"))
		require.NoError(t, err)
		second, err := json.Marshal(e.ScoreATS(text, "software_engineer"))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	}
}

func TestScoreATSIsSafeForConcurrentUse(t *testing.T) {
	e := New(nil)
	want := e.ScoreATS(sampleResumes[4], "software_engineer")

	done := make(chan types.AtsScore)
	for range 16 {
		go func() { done <- e.ScoreATS(sampleResumes[4], "software_engineer") }()
	}
	for range 16 {
		assert.Equal(t, want, <-done)
	}
}

func TestOverallWeights(t *testing.T) {
	got := Overall(types.ComponentScores{Keyword: 50, Format: 80, Readability: 60, Structure: 90})
	assert.True(t, math.Abs(got-(20+24+12+9)) < 1e-9)
}

func TestCheckInput(t *testing.T) {
	assert.NoError(t, CheckInput(""))
	assert.NoError(t, CheckInput("Résumé • 履歴書"))
	assert.Error(t, CheckInput(string([]byte{0xff, 0xfe})))
}

func TestEngineUsesCatalogSnapshot(t *testing.T) {
	cat, err := catalog.Parse([]byte(`{"ats_keywords": {"sre": ["terraform", "go"]}}`))
	require.NoError(t, err)

	got := New(cat).ScoreATS("Terraform modules", "SRE")
	assert.Equal(t, 50.0, got.Keyword)
	assert.Equal(t, []string{"terraform"}, got.MatchedKeywords)
	assert.Equal(t, []string{"go"}, got.MissingKeywords)
}

func BenchmarkScoreATS(b *testing.B) {
	e := New(nil)
	text := sampleResumes[4]
	for b.Loop() {
		e.ScoreATS(text, "software_engineer")
	}
}
