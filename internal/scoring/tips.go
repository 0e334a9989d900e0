package scoring

import "resuscan/internal/types"

// MaxTips caps the generated tip list.
const MaxTips = 8

const minTips = 3

type tipBlock struct {
	score     func(types.ComponentScores) float64
	threshold float64
	tips      []string
}

var tipBlocks = []tipBlock{
	{
		score:     func(s types.ComponentScores) float64 { return s.Keyword },
		threshold: 70,
		tips: []string{
			"Add more job-specific keywords from the job description",
			"Include industry-standard terminology and acronyms",
		},
	},
	{
		score:     func(s types.ComponentScores) float64 { return s.Format },
		threshold: 80,
		tips: []string{
			"Use consistent font size (12pt recommended)",
			"Avoid graphics, tables, and special formatting",
			"Use simple bullet points (•) instead of special characters",
			"Save as PDF to preserve formatting",
		},
	},
	{
		score:     func(s types.ComponentScores) float64 { return s.Readability },
		threshold: 75,
		tips: []string{
			"Use action verbs to start bullet points",
			"Keep sentences concise (15-20 words maximum)",
			"Use bullet points to highlight achievements",
			"Quantify achievements with numbers and percentages",
		},
	},
	{
		score:     func(s types.ComponentScores) float64 { return s.Structure },
		threshold: 80,
		tips: []string{
			"Include clear section headers (Experience, Education, Skills)",
			"Add contact information at the top",
			"Include dates for all experience entries",
			"List company names and job titles clearly",
		},
	},
}

var fillerTips = []string{
	"Keep resume to 1-2 pages maximum",
	"Use reverse chronological order for experience",
	"Include relevant certifications and training",
}

// GenerateTips maps sub-score deficits to an ordered tip list of at most
// MaxTips entries. Blocks are appended in keyword, format, readability,
// structure order; generic tips fill in when fewer than three apply.
func GenerateTips(scores types.ComponentScores) []string {
	tips := make([]string, 0, MaxTips)
	for _, block := range tipBlocks {
		if block.score(scores) < block.threshold {
			tips = append(tips, block.tips...)
		}
	}
	if len(tips) < minTips {
		tips = append(tips, fillerTips...)
	}
	if len(tips) > MaxTips {
		tips = tips[:MaxTips]
	}
	return tips
}
