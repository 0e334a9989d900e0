// Package scoring is the deterministic resume analysis engine: ATS
// compatibility scoring, skill gap analysis, improvement tips and
// course/project recommendations.
//
// Every function is pure over an immutable catalog snapshot and safe for
// concurrent use.
package scoring

import (
	"fmt"
	"strings"

	"resuscan/internal/catalog"
	"resuscan/internal/types"
)

// Component weights of the overall ATS score.
const (
	KeywordWeight     = 0.4
	FormatWeight      = 0.3
	ReadabilityWeight = 0.2
	StructureWeight   = 0.1
)

// MaxMissingKeywords caps the missing keyword list in an AtsScore.
const MaxMissingKeywords = 10

// Engine binds the scoring operations to one catalog snapshot.
type Engine struct {
	cat *catalog.Catalog
}

// New returns an Engine over cat, or over the built-in catalog when cat is
// nil.
func New(cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{cat: cat}
}

// Catalog returns the snapshot the engine reads.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// partitionKeywords splits the catalog terms for jobTitle into those found
// in text and those not, both in catalog order.
func (e *Engine) partitionKeywords(text, jobTitle string) (keywords, matched, missing []string) {
	keywords = e.cat.ATSKeywords(catalog.NormalizeCategory(jobTitle))
	lower := strings.ToLower(text)
	matched = make([]string, 0, len(keywords))
	missing = make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return keywords, matched, missing
}

// KeywordScore is the share of catalog terms for jobTitle present in text,
// 0 when the title is unknown.
func (e *Engine) KeywordScore(text, jobTitle string) float64 {
	keywords, matched, _ := e.partitionKeywords(text, jobTitle)
	return keywordCoverage(len(matched), len(keywords))
}

func keywordCoverage(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return clamp(100 * float64(matched) / float64(total))
}

// Overall combines the four components under the fixed weights.
func Overall(s types.ComponentScores) float64 {
	return s.Keyword*KeywordWeight +
		s.Format*FormatWeight +
		s.Readability*ReadabilityWeight +
		s.Structure*StructureWeight
}

// ScoreATS computes the full ATS compatibility report for text against
// jobTitle. Unknown titles yield an empty keyword set and a zero keyword
// score.
func (e *Engine) ScoreATS(text, jobTitle string) types.AtsScore {
	keywords, matched, missing := e.partitionKeywords(text, jobTitle)

	scores := types.ComponentScores{
		Keyword:     keywordCoverage(len(matched), len(keywords)),
		Format:      FormatScore(text),
		Readability: ReadabilityScore(text),
		Structure:   StructureScore(text),
	}

	if len(missing) > MaxMissingKeywords {
		missing = missing[:MaxMissingKeywords]
	}

	return types.AtsScore{
		Overall:              round2(Overall(scores)),
		Keyword:              round2(scores.Keyword),
		Format:               round2(scores.Format),
		Readability:          round2(scores.Readability),
		Structure:            round2(scores.Structure),
		MatchedKeywords:      matched,
		MissingKeywords:      missing,
		TotalKeywordsChecked: len(keywords),
		KeywordsMatched:      len(matched),
		ImprovementTips:      GenerateTips(scores),
		ScoreBreakdown: types.ScoreBreakdown{
			Keywords:    fmt.Sprintf("%.1f/100", scores.Keyword),
			Format:      fmt.Sprintf("%.1f/100", scores.Format),
			Readability: fmt.Sprintf("%.1f/100", scores.Readability),
			Structure:   fmt.Sprintf("%.1f/100", scores.Structure),
		},
	}
}
