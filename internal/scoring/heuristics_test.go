package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const wellFormedBullets = `• Developed a scalable payment service handling many daily requests.
• Led a team of five engineers across three time zones.
• Designed the data model for the new reporting platform.
• Improved build times for the main repository by forty percent.`

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty text", "", 100},
		{"plain text", "Jane Doe\nSoftware engineer at Acme", 100},
		{"tab separated table", "Name\tRole\nJane\tEngineer\nJohn\tDesigner", 80},
		{"space aligned table", "Jane          Engineer\nJohn          Designer", 80},
		{"box drawing glyphs", "Jane Doe\nJohn ═══ Smith", 85},
		{"many glyphs penalised once", strings.Repeat("█", 200), 85},
		{"three size classes", "HEADER\nNormal line\nlowercase line", 90},
		{"two size classes", "HEADER\nNormal line\nAnother normal line", 100},
		{"formatting markers", "**bold** text", 90},
		{"everything wrong", "HEADER\tX\nNormal █\tY\nlower\tZ\n***", 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatScore(tt.text))
		})
	}
}

func TestFormatIssues(t *testing.T) {
	assert.Empty(t, FormatIssues("Jane Doe"))
	assert.Equal(t, []string{"graphics", "special_formatting"}, FormatIssues("Jane ██ **Doe**"))
}

func TestReadabilityScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty text", "", 0},
		{"whitespace only", "   \n\t  \n", 0},
		{"well formed bullets", wellFormedBullets, 100},
		{"one long sentence", strings.Repeat("word ", 30), 45},
		{"short sentences with punctuated verbs", "Led. Built. Managed.", 55},
		{"verb heavy", "- led built\n- managed\n- created", 95},
		{"too many bullets", strings.Repeat("- Developed the platform for the team in the office today.\n", 21), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadabilityScore(tt.text))
		})
	}
}

func TestStructureScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"complete", "Summary\nExperience\nEducation\nSkills\nemail: jane@example.com\n2020 - Present\nAcme Inc", 100},
		{"three sections", "experience education skills jane@example.com 2021 Widgets LLC", 85},
		{"two sections", "experience education jane@example.com 2021 Widgets LLC", 70},
		{"no contact", "experience education skills summary 2021 Widgets LLC", 80},
		{"no dates", "experience education skills summary jane@example.com Widgets LLC", 85},
		{"no company", "experience education skills summary jane@example.com 2021", 90},
		{"nothing", "hello world", 25},
		{"empty", "", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StructureScore(tt.text))
		})
	}
}

func TestIsUpper(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"HEADER", true},
		{"EXPERIENCE 2020-2024", true},
		{"Header", false},
		{"2020", false},
		{"", false},
		{"ÉCOLE", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, isUpper(tt.in))
		})
	}
}

func TestGuardTableFirstMatchWins(t *testing.T) {
	table := guardTable{{below, 3, 30}, {below, 4, 15}}

	assert.Equal(t, 30.0, table.penalty(0))
	assert.Equal(t, 30.0, table.penalty(2))
	assert.Equal(t, 15.0, table.penalty(3))
	assert.Equal(t, 0.0, table.penalty(4))
}

func TestRuleSetClampsAtZero(t *testing.T) {
	rs := ruleSet{
		{name: "a", measure: func(*textStats) float64 { return 1 }, table: guardTable{{above, 0, 80}}},
		{name: "b", measure: func(*textStats) float64 { return 1 }, table: guardTable{{above, 0, 80}}},
	}
	assert.Equal(t, 0.0, rs.score(newTextStats("")))
}

func BenchmarkHeuristics(b *testing.B) {
	text := strings.Repeat(wellFormedBullets+"\n", 50)
	for b.Loop() {
		FormatScore(text)
		ReadabilityScore(text)
		StructureScore(text)
	}
}
