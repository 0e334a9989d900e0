package scoring

import "math"

type comparison int

const (
	above comparison = iota
	below
)

// guard deducts penalty when a measured value crosses threshold.
type guard struct {
	cmp       comparison
	threshold float64
	penalty   float64
}

func (g guard) matches(v float64) bool {
	switch g.cmp {
	case above:
		return v > g.threshold
	case below:
		return v < g.threshold
	}
	return false
}

// guardTable is evaluated top to bottom; only the first matching guard
// applies, so tiers within one table are mutually exclusive.
type guardTable []guard

func (t guardTable) penalty(v float64) float64 {
	for _, g := range t {
		if g.matches(v) {
			return g.penalty
		}
	}
	return 0
}

// rule pairs one measurement of the text with its guard table.
type rule struct {
	name    string
	measure func(*textStats) float64
	table   guardTable
}

// ruleSet is a heuristic scorer: start at maxScore, subtract each rule's
// penalty, clamp at zero.
type ruleSet []rule

const maxScore = 100.0

func (rs ruleSet) score(ts *textStats) float64 {
	score := maxScore
	for _, r := range rs {
		score -= r.table.penalty(r.measure(ts))
	}
	return clamp(score)
}

// applied lists the names of the rules that deducted points.
func (rs ruleSet) applied(ts *textStats) []string {
	var names []string
	for _, r := range rs {
		if r.table.penalty(r.measure(ts)) > 0 {
			names = append(names, r.name)
		}
	}
	return names
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
