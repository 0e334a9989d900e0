package scoring

import (
	"strings"

	"resuscan/internal/catalog"
	"resuscan/internal/types"
)

const (
	maxRecommendedSkills = 5
	entriesPerSkill      = 2
)

// Recommend picks courses and projects for the first five missing skills.
// For each skill the first catalog key that contains it, or is contained
// by it, supplies up to two courses and two projects. When nothing matched,
// the fallback key's first two entries are used, independently for courses
// and projects. jobTitle is accepted for symmetry and not used to filter.
func (e *Engine) Recommend(missingSkills []string, jobTitle string) types.Recommendations {
	out := types.Recommendations{
		Courses:  make([]types.Course, 0),
		Projects: make([]types.Project, 0),
	}

	skills := missingSkills
	if len(skills) > maxRecommendedSkills {
		skills = skills[:maxRecommendedSkills]
	}

	resources := e.cat.Resources()
	for _, skill := range skills {
		res, ok := matchResource(resources, strings.ToLower(skill))
		if !ok {
			continue
		}
		courses := firstN(res.Courses, entriesPerSkill)
		projects := firstN(res.Projects, entriesPerSkill)
		out.Courses = append(out.Courses, courses...)
		out.Projects = append(out.Projects, projects...)
		out.Matches = append(out.Matches, types.Recommendation{
			Skill:    skill,
			Key:      res.Key,
			Courses:  courses,
			Projects: projects,
		})
	}

	if len(out.Courses) == 0 || len(out.Projects) == 0 {
		fallback, _ := e.cat.Resource(e.cat.FallbackKey())
		if len(out.Courses) == 0 {
			out.Courses = append(out.Courses, firstN(fallback.Courses, entriesPerSkill)...)
		}
		if len(out.Projects) == 0 {
			out.Projects = append(out.Projects, firstN(fallback.Projects, entriesPerSkill)...)
		}
	}

	return out
}

func matchResource(resources []catalog.Resource, skill string) (catalog.Resource, bool) {
	for _, r := range resources {
		if strings.Contains(skill, r.Key) || strings.Contains(r.Key, skill) {
			return r, true
		}
	}
	return catalog.Resource{}, false
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	return append([]T(nil), items...)
}
