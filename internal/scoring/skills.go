package scoring

import (
	"strings"

	"resuscan/internal/types"
)

// ExtractSkills returns the vocabulary skills found in text, each at most
// once, in vocabulary order.
func (e *Engine) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, skill := range e.cat.Vocabulary() {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// SkillGap reconciles extracted skills with the required skills for
// jobTitle, looked up by exact lowercase title.
func (e *Engine) SkillGap(extracted []string, jobTitle string) types.SkillGapResult {
	required := e.cat.RequiredSkills(strings.ToLower(jobTitle))
	if required == nil {
		required = []string{}
	}

	have := make(map[string]struct{}, len(extracted))
	for _, s := range extracted {
		have[strings.ToLower(s)] = struct{}{}
	}

	existing := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, skill := range required {
		if _, ok := have[strings.ToLower(skill)]; ok {
			existing = append(existing, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	var match float64
	if len(required) > 0 {
		match = 100 * float64(len(existing)) / float64(len(required))
	}

	resumeSkills := append([]string{}, extracted...)

	return types.SkillGapResult{
		ResumeSkills:        resumeSkills,
		RequiredSkills:      required,
		MissingSkills:       missing,
		ExistingSkills:      existing,
		SkillMatchPercent:   round2(match),
		TotalSkillsRequired: len(required),
		SkillsYouHave:       len(existing),
		SkillsToLearn:       len(missing),
	}
}

// AnalyzeSkillGap extracts skills from text and reconciles them with
// jobTitle's requirements.
func (e *Engine) AnalyzeSkillGap(text, jobTitle string) types.SkillGapResult {
	return e.SkillGap(e.ExtractSkills(text), jobTitle)
}
