package scoring

import (
	"strings"
)

var graphicGlyphs = []string{"█", "▓", "▒", "░", "═", "║", "╔", "╗", "╚", "╝"}

// formatRules flag layout that ATS parsers handle badly.
var formatRules = ruleSet{
	{name: "tables", measure: tableLineRatio, table: guardTable{{above, 0.1, 20}}},
	{name: "graphics", measure: hasGraphics, table: guardTable{{above, 0, 15}}},
	{name: "inconsistent_sizing", measure: sizeClassCount, table: guardTable{{above, 2, 10}}},
	{name: "special_formatting", measure: markerRatio, table: guardTable{{above, 0.01, 10}}},
}

func tableLineRatio(ts *textStats) float64 {
	if len(ts.nonEmpty) == 0 {
		return 0
	}
	n := 0
	for _, line := range ts.nonEmpty {
		if strings.Contains(line, "\t") || strings.Count(line, "  ") > 3 {
			n++
		}
	}
	return float64(n) / float64(len(ts.nonEmpty))
}

func hasGraphics(ts *textStats) float64 {
	for _, g := range graphicGlyphs {
		if strings.Contains(ts.raw, g) {
			return 1
		}
	}
	return 0
}

// sizeClassCount approximates distinct font sizes from capitalisation:
// all-caps lines are large, lines not starting upper-case are small.
func sizeClassCount(ts *textStats) float64 {
	classes := make(map[string]struct{}, 3)
	for _, line := range ts.nonEmpty {
		trimmed := strings.TrimSpace(line)
		first, _ := firstRune(trimmed)
		switch {
		case isUpper(line):
			classes["large"] = struct{}{}
		case !isUpper(string(first)):
			classes["small"] = struct{}{}
		default:
			classes["normal"] = struct{}{}
		}
	}
	return float64(len(classes))
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func markerRatio(ts *textStats) float64 {
	if ts.runes == 0 {
		return 0
	}
	return float64(strings.Count(ts.raw, "*")) / float64(ts.runes)
}

// FormatScore rates ATS-friendliness of the raw layout, 0 to 100.
func FormatScore(text string) float64 {
	return formatRules.score(newTextStats(text))
}

// FormatIssues names the format rules that deducted points.
func FormatIssues(text string) []string {
	return formatRules.applied(newTextStats(text))
}

var actionVerbs = setOf(
	"developed", "implemented", "created", "managed", "led", "designed", "built",
	"optimized", "improved", "increased", "reduced", "achieved", "delivered",
	"coordinated", "facilitated", "established", "maintained", "performed",
	"conducted", "analyzed", "researched", "collaborated", "mentored", "trained",
	"supervised",
)

func setOf(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

var bulletGlyphs = []string{"•", "-", "*", "○"}

var readabilityRules = ruleSet{
	{name: "sentence_length", measure: avgSentenceLength, table: guardTable{{above, 25, 20}, {below, 5, 10}}},
	{name: "bullet_count", measure: bulletLineCount, table: guardTable{{below, 3, 15}, {above, 20, 10}}},
	{name: "action_verbs", measure: actionVerbRatio, table: guardTable{{below, 0.02, 20}, {above, 0.1, 5}}},
}

func avgSentenceLength(ts *textStats) float64 {
	sentences := len(strings.Split(ts.raw, "."))
	return float64(len(ts.words)) / float64(sentences)
}

func bulletLineCount(ts *textStats) float64 {
	n := 0
	for _, line := range ts.lines {
		trimmed := strings.TrimSpace(line)
		for _, g := range bulletGlyphs {
			if strings.HasPrefix(trimmed, g) {
				n++
				break
			}
		}
	}
	return float64(n)
}

func actionVerbRatio(ts *textStats) float64 {
	n := 0
	for _, w := range ts.words {
		if _, ok := actionVerbs[strings.ToLower(w)]; ok {
			n++
		}
	}
	return float64(n) / float64(len(ts.words))
}

// ReadabilityScore rates sentence, bullet and verb statistics, 0 to 100.
// Text without words scores 0.
func ReadabilityScore(text string) float64 {
	ts := newTextStats(text)
	if len(ts.words) == 0 {
		return 0
	}
	return readabilityRules.score(ts)
}

var (
	sectionTerms      = []string{"experience", "education", "skills", "contact", "summary", "objective"}
	contactIndicators = []string{"@", ".com", "phone", "email", "linkedin"}
	datePatterns      = []string{"202", "201", "200", "present", "current"}
	companyIndicators = []string{"inc", "corp", "ltd", "company", "llc"}
)

var structureRules = ruleSet{
	{name: "sections", measure: present(sectionTerms), table: guardTable{{below, 3, 30}, {below, 4, 15}}},
	{name: "contact", measure: present(contactIndicators), table: guardTable{{below, 1, 20}}},
	{name: "dates", measure: present(datePatterns), table: guardTable{{below, 1, 15}}},
	{name: "companies", measure: present(companyIndicators), table: guardTable{{below, 1, 10}}},
}

func present(terms []string) func(*textStats) float64 {
	return func(ts *textStats) float64 { return ts.countPresent(terms) }
}

// StructureScore checks for sections, contact details, dates and company
// names, 0 to 100.
func StructureScore(text string) float64 {
	return structureRules.score(newTextStats(text))
}
