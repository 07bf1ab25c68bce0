// Package compare aligns two canonical candidates for side-by-side display.
package compare

import (
	"time"

	"github.com/spigell/candidate-board/internal/candidate"
	"github.com/spigell/candidate-board/internal/score"
)

// Result is everything a two-column comparison view needs.
type Result struct {
	Candidates  [2]Side         `json:"candidates"`
	Categories  []string        `json:"categories"`
	Skills      []CategoryTable `json:"skills"`
	SkillCounts []CategoryCount `json:"skill_counts"`
	Profile     ProfileDataset  `json:"profile"`
}

// Side is one column of the comparison.
type Side struct {
	Name            string                      `json:"name"`
	ResumeID        string                      `json:"resume_id,omitempty"`
	Score           score.Display               `json:"score"`
	PersonalInfo    candidate.PersonalInfo      `json:"personal_info"`
	Experience      []candidate.ExperienceEntry `json:"experience"`
	Education       []candidate.EducationEntry  `json:"education"`
	ExperienceYears int                         `json:"experience_years"`
	EducationLevel  int                         `json:"education_level"`
}

// CategoryTable is the membership table for one skill category.
type CategoryTable struct {
	Category string     `json:"category"`
	Rows     []SkillRow `json:"rows"`
}

// SkillRow tells which of the two candidates has a skill.
type SkillRow struct {
	Skill string  `json:"skill"`
	Has   [2]bool `json:"has"`
}

// CategoryCount is one point of the skills-per-category dataset.
type CategoryCount struct {
	Category string `json:"category"`
	Counts   [2]int `json:"counts"`
}

// ProfileDataset is the experience-years and education-level pair.
type ProfileDataset struct {
	ExperienceYears [2]int `json:"experience_years"`
	EducationLevel  [2]int `json:"education_level"`
}

// Aggregator builds comparisons. The zero value uses the wall clock.
type Aggregator struct {
	now func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the clock used to resolve ongoing positions.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// New returns an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) currentYear() int {
	if a == nil || a.now == nil {
		return time.Now().Year()
	}
	return a.now().Year()
}

// Compare aligns exactly two candidates. Any other count yields an
// *InvalidInputError and no result.
func (a *Aggregator) Compare(candidates ...candidate.Candidate) (*Result, error) {
	if len(candidates) != 2 {
		return nil, &InvalidInputError{Count: len(candidates)}
	}

	pair := [2]candidate.Candidate{candidates[0], candidates[1]}
	year := a.currentYear()

	result := &Result{
		Categories: AllCategories(pair[0], pair[1]),
	}

	for i, c := range pair {
		result.Candidates[i] = Side{
			Name:            c.Name,
			ResumeID:        c.ResumeID,
			Score:           score.DisplayOf(c.MatchPercentage),
			PersonalInfo:    c.PersonalInfo,
			Experience:      c.Experience,
			Education:       c.Education,
			ExperienceYears: ExperienceYears(c, year),
			EducationLevel:  EducationLevel(c),
		}
		result.Profile.ExperienceYears[i] = result.Candidates[i].ExperienceYears
		result.Profile.EducationLevel[i] = result.Candidates[i].EducationLevel
	}

	result.Skills = make([]CategoryTable, 0, len(result.Categories))
	result.SkillCounts = make([]CategoryCount, 0, len(result.Categories))
	for _, category := range result.Categories {
		skills := AllSkills(pair[0], pair[1], category)

		table := CategoryTable{Category: category, Rows: make([]SkillRow, 0, len(skills))}
		for _, skill := range skills {
			table.Rows = append(table.Rows, SkillRow{
				Skill: skill,
				Has:   [2]bool{HasSkill(pair[0], category, skill), HasSkill(pair[1], category, skill)},
			})
		}
		result.Skills = append(result.Skills, table)

		result.SkillCounts = append(result.SkillCounts, CategoryCount{
			Category: category,
			Counts:   [2]int{pair[0].Skills.Count(category), pair[1].Skills.Count(category)},
		})
	}

	return result, nil
}

// CompareRecords normalizes raw records and compares them.
func (a *Aggregator) CompareRecords(records ...candidate.Record) (*Result, error) {
	if len(records) != 2 {
		return nil, &InvalidInputError{Count: len(records)}
	}
	return a.Compare(candidate.Normalize(records[0]), candidate.Normalize(records[1]))
}

// Compare aligns exactly two candidates using the wall clock.
func Compare(candidates ...candidate.Candidate) (*Result, error) {
	return New().Compare(candidates...)
}
