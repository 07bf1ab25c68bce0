package compare

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spigell/candidate-board/internal/candidate"
)

// AllCategories returns the union of both candidates' categories, sorted.
func AllCategories(a, b candidate.Candidate) []string {
	categories := a.Skills.Categories()
	for _, category := range b.Skills.Categories() {
		if _, ok := a.Skills[category]; !ok {
			categories = append(categories, category)
		}
	}
	slices.Sort(categories)
	return categories
}

// AllSkills returns the union of both candidates' skills in a category, sorted.
// A missing category counts as empty.
func AllSkills(a, b candidate.Candidate, category string) []string {
	union := mapset.NewThreadUnsafeSet(a.Skills.Skills(category)...)
	union.Append(b.Skills.Skills(category)...)

	skills := union.ToSlice()
	slices.Sort(skills)
	return skills
}

// HasSkill reports exact membership of skill in the candidate's category.
func HasSkill(c candidate.Candidate, category, skill string) bool {
	return c.Skills.Has(category, skill)
}

// SkillCountByCategory returns the number of skills per category.
func SkillCountByCategory(c candidate.Candidate) map[string]int {
	counts := make(map[string]int, len(c.Skills))
	for category := range c.Skills {
		counts[category] = c.Skills.Count(category)
	}
	return counts
}
