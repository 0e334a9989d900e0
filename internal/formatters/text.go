package formatters

import (
	"fmt"
	"strings"

	"resuscan/internal/types"
)

func textFormatters() []Formatter {
	return []Formatter{
		typed[types.AtsScore]{atsText},
		typed[types.SkillGapResult]{skillGapText},
		typed[types.TipList]{tipsText},
		typed[types.Recommendations]{recommendationsText},
		typed[types.BulletImprovements]{bulletsText},
		typed[types.ExtractedText]{func(e types.ExtractedText) string { return e.Text + "\n" }},
		typed[types.ComprehensiveAnalysis]{analysisText},
		typed[types.TemplateList]{templatesText},
		typed[types.VersionList]{versionsText},
		typed[types.Version]{versionText},
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "%s:\n", title)
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func atsText(s types.AtsScore) string {
	var b strings.Builder
	b.WriteString("=== ATS SCORE ===\n")
	fmt.Fprintf(&b, "Overall: %.2f/100\n\n", s.Overall)
	fmt.Fprintf(&b, "Keywords:    %s\n", s.ScoreBreakdown.Keywords)
	fmt.Fprintf(&b, "Format:      %s\n", s.ScoreBreakdown.Format)
	fmt.Fprintf(&b, "Readability: %s\n", s.ScoreBreakdown.Readability)
	fmt.Fprintf(&b, "Structure:   %s\n\n", s.ScoreBreakdown.Structure)
	fmt.Fprintf(&b, "Keywords matched: %d of %d\n", s.KeywordsMatched, s.TotalKeywordsChecked)
	writeList(&b, "Matched keywords", s.MatchedKeywords)
	writeList(&b, "Missing keywords", s.MissingKeywords)
	b.WriteString("\n")
	writeList(&b, "Improvement tips", s.ImprovementTips)
	return b.String()
}

func skillGapText(g types.SkillGapResult) string {
	var b strings.Builder
	b.WriteString("=== SKILL GAP ===\n")
	fmt.Fprintf(&b, "Match: %.2f%% (%d of %d required skills)\n\n",
		g.SkillMatchPercent, g.SkillsYouHave, g.TotalSkillsRequired)
	writeList(&b, "Skills you have", g.ExistingSkills)
	writeList(&b, "Skills to learn", g.MissingSkills)
	writeList(&b, "Skills found in resume", g.ResumeSkills)
	return b.String()
}

func tipsText(t types.TipList) string {
	var b strings.Builder
	b.WriteString("=== TIPS ===\n")
	for i, tip := range t.Tips {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
	}
	return b.String()
}

func recommendationsText(r types.Recommendations) string {
	var b strings.Builder
	b.WriteString("=== COURSES ===\n")
	for _, c := range r.Courses {
		fmt.Fprintf(&b, "- %s (%s, %s, %s)\n", c.Name, c.Platform, c.Level, c.Duration)
		if c.Description != "" {
			fmt.Fprintf(&b, "  %s\n", c.Description)
		}
		if c.URL != "" {
			fmt.Fprintf(&b, "  %s\n", c.URL)
		}
	}
	b.WriteString("\n=== PROJECTS ===\n")
	for _, p := range r.Projects {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", p.Name, p.Difficulty, p.Duration)
		if p.Description != "" {
			fmt.Fprintf(&b, "  %s\n", p.Description)
		}
		if len(p.TechStack) > 0 {
			fmt.Fprintf(&b, "  Stack: %s\n", strings.Join(p.TechStack, ", "))
		}
	}
	return b.String()
}

func bulletsText(bi types.BulletImprovements) string {
	var b strings.Builder
	b.WriteString("=== BULLET POINTS ===\n")
	if bi.Skipped {
		b.WriteString("Skipped: no rewriter configured\n")
		return b.String()
	}
	for i, imp := range bi.Improvements {
		fmt.Fprintf(&b, "%d. %s\n   -> %s\n", i+1, imp.Original, imp.Improved)
	}
	return b.String()
}

func analysisText(a types.ComprehensiveAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job title: %s\n\n", a.JobTitle)
	b.WriteString(atsText(a.ATS))
	b.WriteString("\n")
	b.WriteString(skillGapText(a.SkillGap))
	b.WriteString("\n")
	b.WriteString(bulletsText(a.Bullets))
	b.WriteString("\n")
	b.WriteString(recommendationsText(a.Recommendations))
	return b.String()
}

func templatesText(l types.TemplateList) string {
	var b strings.Builder
	for _, t := range l.Templates {
		fmt.Fprintf(&b, "%-14s %s - %s\n", t.ID, t.Name, t.Description)
	}
	return b.String()
}

func versionsText(l types.VersionList) string {
	if len(l.Versions) == 0 {
		return "No saved versions\n"
	}
	var b strings.Builder
	for _, v := range l.Versions {
		fmt.Fprintf(&b, "%s  %-24s %-24s %s\n", v.ID, v.Name, v.JobTitle, v.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func versionText(v types.Version) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %s\n", v.ID)
	fmt.Fprintf(&b, "Name:     %s\n", v.Name)
	fmt.Fprintf(&b, "Job:      %s\n", v.JobTitle)
	fmt.Fprintf(&b, "Created:  %s\n", v.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Updated:  %s\n\n", v.UpdatedAt.Format("2006-01-02 15:04:05"))
	r := v.ResumeData
	fmt.Fprintf(&b, "%s\n", r.Name)
	if r.Summary != "" {
		fmt.Fprintf(&b, "%s\n", r.Summary)
	}
	for _, e := range r.Experience {
		fmt.Fprintf(&b, "- %s, %s (%s)\n", e.Title, e.Company, e.Dates)
	}
	if len(r.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(r.Skills, ", "))
	}
	return b.String()
}
