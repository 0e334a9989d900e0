// Package catalog holds the static lookup tables the scoring engine reads:
// ATS keywords per job category, required skills per job title, the skill
// vocabulary and the course/project resource catalog.
//
// A Catalog is immutable once built. Accessors return copies so callers can
// never mutate shared state.
package catalog

import (
	"slices"
	"sort"

	"resuscan/internal/types"
)

// Resource groups the courses and projects recommended for one skill key.
type Resource struct {
	Key      string          `json:"key"`
	Courses  []types.Course  `json:"courses"`
	Projects []types.Project `json:"projects"`
}

// Catalog is a read-only snapshot of every lookup table.
type Catalog struct {
	atsKeywords    map[string][]string
	requiredSkills map[string][]string
	vocabulary     []string
	resources      []Resource
	fallbackKey    string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// build deep-copies its inputs so the result shares nothing with the caller.
func build(ats, required map[string][]string, vocabulary []string, resources []Resource, fallbackKey string) *Catalog {
	c := &Catalog{
		atsKeywords:    make(map[string][]string, len(ats)),
		requiredSkills: make(map[string][]string, len(required)),
		vocabulary:     slices.Clone(vocabulary),
		resources:      make([]Resource, 0, len(resources)),
		fallbackKey:    fallbackKey,
	}
	for k, v := range ats {
		c.atsKeywords[k] = slices.Clone(v)
	}
	for k, v := range required {
		c.requiredSkills[k] = slices.Clone(v)
	}
	for _, r := range resources {
		c.resources = append(c.resources, cloneResource(r))
	}
	return c
}

func cloneResource(r Resource) Resource {
	out := Resource{Key: r.Key, Courses: slices.Clone(r.Courses), Projects: make([]types.Project, len(r.Projects))}
	for i, p := range r.Projects {
		p.SkillsDeveloped = slices.Clone(p.SkillsDeveloped)
		p.TechStack = slices.Clone(p.TechStack)
		out.Projects[i] = p
	}
	return out
}

// ATSKeywords returns the ordered keyword list for a normalized job
// category key, or nil when the key is unknown.
func (c *Catalog) ATSKeywords(key string) []string {
	return slices.Clone(c.atsKeywords[key])
}

// RequiredSkills returns the required skills for an exact lowercase job
// title, or nil when the title is unknown.
func (c *Catalog) RequiredSkills(title string) []string {
	return slices.Clone(c.requiredSkills[title])
}

// Vocabulary returns the canonical skill tokens in declared order.
func (c *Catalog) Vocabulary() []string {
	return slices.Clone(c.vocabulary)
}

// Resources returns the resource catalog in declared key order.
func (c *Catalog) Resources() []Resource {
	out := make([]Resource, len(c.resources))
	for i, r := range c.resources {
		out[i] = cloneResource(r)
	}
	return out
}

// Resource returns the entry for key.
func (c *Catalog) Resource(key string) (Resource, bool) {
	for _, r := range c.resources {
		if r.Key == key {
			return cloneResource(r), true
		}
	}
	return Resource{}, false
}

// FallbackKey names the resource used when no missing skill matched.
func (c *Catalog) FallbackKey() string {
	return c.fallbackKey
}

// JobCategories lists the ATS keyword keys in sorted order.
func (c *Catalog) JobCategories() []string {
	return sortedKeys(c.atsKeywords)
}

// JobTitles lists the required-skill titles in sorted order.
func (c *Catalog) JobTitles() []string {
	return sortedKeys(c.requiredSkills)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source yields the catalog snapshot to use for one call.
type Source interface {
	Current() *Catalog
}

// Static is a Source that always returns the same snapshot.
type Static struct {
	cat *Catalog
}

// NewStatic wraps cat, falling back to the default catalog when nil.
func NewStatic(cat *Catalog) *Static {
	if cat == nil {
		cat = Default()
	}
	return &Static{cat: cat}
}

func (s *Static) Current() *Catalog {
	return s.cat
}
