package formatters

import (
	"fmt"
	"strings"

	"resuscan/internal/types"
)

func markdownFormatters() []Formatter {
	return []Formatter{
		typed[types.AtsScore]{func(s types.AtsScore) string { return atsMarkdown(s, "#") }},
		typed[types.SkillGapResult]{func(g types.SkillGapResult) string { return skillGapMarkdown(g, "#") }},
		typed[types.TipList]{tipsMarkdown},
		typed[types.Recommendations]{func(r types.Recommendations) string { return recommendationsMarkdown(r, "#") }},
		typed[types.BulletImprovements]{func(bi types.BulletImprovements) string { return bulletsMarkdown(bi, "#") }},
		typed[types.ComprehensiveAnalysis]{analysisMarkdown},
		typed[types.TemplateList]{templatesMarkdown},
		typed[types.VersionList]{versionsMarkdown},
		typed[types.Version]{versionMarkdown},
		typed[types.ExtractedText]{func(e types.ExtractedText) string { return "```\n" + e.Text + "\n```\n" }},
	}
}

func mdList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("_none_\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func atsMarkdown(s types.AtsScore, h string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ATS Score\n\n", h)
	fmt.Fprintf(&b, "**Overall:** %.2f/100\n\n", s.Overall)
	b.WriteString("| Component | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Keywords | %s |\n", s.ScoreBreakdown.Keywords)
	fmt.Fprintf(&b, "| Format | %s |\n", s.ScoreBreakdown.Format)
	fmt.Fprintf(&b, "| Readability | %s |\n", s.ScoreBreakdown.Readability)
	fmt.Fprintf(&b, "| Structure | %s |\n\n", s.ScoreBreakdown.Structure)
	fmt.Fprintf(&b, "%s# Missing keywords\n\n", h)
	mdList(&b, s.MissingKeywords)
	fmt.Fprintf(&b, "\n%s# Tips\n\n", h)
	mdList(&b, s.ImprovementTips)
	return b.String()
}

func skillGapMarkdown(g types.SkillGapResult, h string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Skill Gap\n\n", h)
	fmt.Fprintf(&b, "**Match:** %.2f%% (%d of %d)\n\n", g.SkillMatchPercent, g.SkillsYouHave, g.TotalSkillsRequired)
	fmt.Fprintf(&b, "%s# Skills you have\n\n", h)
	mdList(&b, g.ExistingSkills)
	fmt.Fprintf(&b, "\n%s# Skills to learn\n\n", h)
	mdList(&b, g.MissingSkills)
	return b.String()
}

func tipsMarkdown(t types.TipList) string {
	var b strings.Builder
	b.WriteString("# Tips\n\n")
	for i, tip := range t.Tips {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
	}
	return b.String()
}

func recommendationsMarkdown(r types.Recommendations, h string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Courses\n\n", h)
	for _, c := range r.Courses {
		if c.URL != "" {
			fmt.Fprintf(&b, "- [%s](%s) - %s, %s, %s\n", c.Name, c.URL, c.Platform, c.Level, c.Duration)
		} else {
			fmt.Fprintf(&b, "- **%s** - %s, %s, %s\n", c.Name, c.Platform, c.Level, c.Duration)
		}
	}
	fmt.Fprintf(&b, "\n%s Projects\n\n", h)
	for _, p := range r.Projects {
		fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n", p.Name, p.Difficulty, p.Duration, p.Description)
	}
	return b.String()
}

func bulletsMarkdown(bi types.BulletImprovements, h string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Bullet Points\n\n", h)
	if bi.Skipped {
		b.WriteString("_Skipped: no rewriter configured._\n")
		return b.String()
	}
	b.WriteString("| Original | Improved |\n|---|---|\n")
	for _, imp := range bi.Improvements {
		fmt.Fprintf(&b, "| %s | %s |\n", mdCell(imp.Original), mdCell(imp.Improved))
	}
	return b.String()
}

func mdCell(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", "<br>").Replace(s)
}

func analysisMarkdown(a types.ComprehensiveAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Resume Analysis: %s\n\n", a.JobTitle)
	b.WriteString(atsMarkdown(a.ATS, "##"))
	b.WriteString("\n")
	b.WriteString(skillGapMarkdown(a.SkillGap, "##"))
	b.WriteString("\n")
	b.WriteString(bulletsMarkdown(a.Bullets, "##"))
	b.WriteString("\n")
	b.WriteString(recommendationsMarkdown(a.Recommendations, "##"))
	return b.String()
}

func templatesMarkdown(l types.TemplateList) string {
	var b strings.Builder
	b.WriteString("| ID | Name | Description |\n|---|---|---|\n")
	for _, t := range l.Templates {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", t.ID, t.Name, mdCell(t.Description))
	}
	return b.String()
}

func versionsMarkdown(l types.VersionList) string {
	var b strings.Builder
	b.WriteString("| ID | Name | Job title | Updated |\n|---|---|---|---|\n")
	for _, v := range l.Versions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", v.ID, mdCell(v.Name), mdCell(v.JobTitle), v.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func versionMarkdown(v types.Version) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Name)
	fmt.Fprintf(&b, "- **ID:** %s\n", v.ID)
	if v.JobTitle != "" {
		fmt.Fprintf(&b, "- **Job title:** %s\n", v.JobTitle)
	}
	fmt.Fprintf(&b, "- **Updated:** %s\n\n", v.UpdatedAt.Format("2006-01-02 15:04"))

	r := v.ResumeData
	fmt.Fprintf(&b, "## %s\n\n", r.Name)
	if r.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Summary)
	}
	for _, e := range r.Experience {
		fmt.Fprintf(&b, "- **%s**, %s (%s)\n", e.Title, e.Company, e.Dates)
	}
	if len(r.Skills) > 0 {
		fmt.Fprintf(&b, "\n**Skills:** %s\n", strings.Join(r.Skills, ", "))
	}
	return b.String()
}
