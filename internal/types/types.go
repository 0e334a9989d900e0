package types

import "time"

// ScoreBreakdown renders each component as "%.1f/100".
type ScoreBreakdown struct {
	Keywords    string `json:"keywords"`
	Format      string `json:"format"`
	Readability string `json:"readability"`
	Structure   string `json:"structure"`
}

// AtsScore is the weighted ATS compatibility result for one resume and role
type AtsScore struct {
	Overall              float64        `json:"ats_score"`
	Keyword              float64        `json:"keyword_score"`
	Format               float64        `json:"format_score"`
	Readability          float64        `json:"readability_score"`
	Structure            float64        `json:"structure_score"`
	MatchedKeywords      []string       `json:"matched_keywords"`
	MissingKeywords      []string       `json:"missing_keywords"`
	TotalKeywordsChecked int            `json:"total_keywords_checked"`
	KeywordsMatched      int            `json:"keywords_matched"`
	ImprovementTips      []string       `json:"improvement_tips"`
	ScoreBreakdown       ScoreBreakdown `json:"score_breakdown"`
}

// ComponentScores are the four sub-scores the tip generator reads.
type ComponentScores struct {
	Keyword     float64 `json:"keyword_score"`
	Format      float64 `json:"format_score"`
	Readability float64 `json:"readability_score"`
	Structure   float64 `json:"structure_score"`
}

// SkillGapResult compares resume skills with a role's required skills
type SkillGapResult struct {
	ResumeSkills        []string `json:"resume_skills"`
	RequiredSkills      []string `json:"required_skills"`
	MissingSkills       []string `json:"missing_skills"`
	ExistingSkills      []string `json:"existing_skills"`
	SkillMatchPercent   float64  `json:"skill_match_percentage"`
	TotalSkillsRequired int      `json:"total_skills_required"`
	SkillsYouHave       int      `json:"skills_you_have"`
	SkillsToLearn       int      `json:"skills_to_learn"`
}

// TipList is an ordered list of improvement tips
type TipList struct {
	Tips []string `json:"tips"`
}

// Course is a learning resource entry
type Course struct {
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
}

// Project is a practice project entry
type Project struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	SkillsDeveloped []string `json:"skills_developed"`
	Difficulty      string   `json:"difficulty"`
	Duration        string   `json:"duration"`
	TechStack       []string `json:"tech_stack"`
}

// Recommendation records which catalog entries were picked for one skill.
type Recommendation struct {
	Skill    string    `json:"skill"`
	Key      string    `json:"key"`
	Courses  []Course  `json:"courses"`
	Projects []Project `json:"projects"`
}

// Recommendations is the flattened course and project list for a set of
// missing skills.
type Recommendations struct {
	Courses  []Course         `json:"courses"`
	Projects []Project        `json:"projects"`
	Matches  []Recommendation `json:"matches,omitempty"`
}

// BulletImprovement pairs an original bullet with its rewrite
type BulletImprovement struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
}

// BulletImprovements wraps a batch of rewrites
type BulletImprovements struct {
	Improvements []BulletImprovement `json:"improved_bullet_points"`
	Skipped      bool                `json:"skipped,omitempty"`
}

// ExtractedText is the output of document text extraction
type ExtractedText struct {
	FileName string `json:"file_name,omitempty"`
	Text     string `json:"resume_text"`
}

// ComprehensiveAnalysis bundles every analysis for one resume
type ComprehensiveAnalysis struct {
	ResumeText      string             `json:"resume_text"`
	JobTitle        string             `json:"job_title"`
	ATS             AtsScore           `json:"ats_analysis"`
	SkillGap        SkillGapResult     `json:"skill_gap_analysis"`
	Bullets         BulletImprovements `json:"bullet_point_improvements"`
	Recommendations Recommendations    `json:"recommendations"`
}

// Experience is one work history entry in a structured resume
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one education entry in a structured resume
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school,omitempty"`
	Dates  string `json:"dates,omitempty"`
}

// ResumeProject is a project listed on a structured resume
type ResumeProject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Resume is the structured resume used by the builder and renderer
type Resume struct {
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Location   string          `json:"location,omitempty"`
	LinkedIn   string          `json:"linkedin,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Experience []Experience    `json:"experience,omitempty"`
	Education  []Education     `json:"education,omitempty"`
	Skills     []string        `json:"skills,omitempty"`
	Projects   []ResumeProject `json:"projects,omitempty"`
}

// Template describes page layout parameters for rendering
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	FontSize    float64    `json:"font_size"`
	LineSpacing float64    `json:"line_spacing"`
	SectionGap  float64    `json:"section_spacing"`
	Margins     [4]float64 `json:"margins"`
}

// TemplateSummary is the listing view of a template
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplateList wraps the available templates
type TemplateList struct {
	Templates []TemplateSummary `json:"templates"`
}

// Version is a saved resume revision
type Version struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	JobTitle   string    `json:"job_title"`
	ResumeData Resume    `json:"resume_data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VersionSummary is the listing view of a saved version
type VersionSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JobTitle  string    `json:"job_title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the listing view of v.
func (v Version) Summary() VersionSummary {
	return VersionSummary{
		ID:        v.ID,
		Name:      v.Name,
		JobTitle:  v.JobTitle,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// VersionList wraps a list of saved versions
type VersionList struct {
	Versions []VersionSummary `json:"versions"`
}
