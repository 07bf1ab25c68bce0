package candidate

import (
	"encoding/json"
	"math"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// GeneralCategory holds skills that arrived as a plain list.
	GeneralCategory = "general"
	// NotAvailable is the placeholder for missing contact details.
	NotAvailable = "N/A"
	// UnknownName is used when no source carries a candidate name.
	UnknownName = "Unknown"
)

// Candidate is the canonical, schema-unified view of one candidate.
// Values are built fresh by Normalize and must be treated as read-only.
type Candidate struct {
	Name     string `json:"name"`
	ResumeID string `json:"resume_id,omitempty"`
	// MatchPercentage is the raw score before display transformation,
	// NaN when no source carried one.
	MatchPercentage float64           `json:"-"`
	Skills          SkillSet          `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	PersonalInfo    PersonalInfo      `json:"personal_info"`
}

// HasMatch reports whether a raw score was found.
func (c Candidate) HasMatch() bool {
	return !math.IsNaN(c.MatchPercentage)
}

// ExperienceEntry is one work history item.
type ExperienceEntry struct {
	Title     string `json:"title,omitempty" mapstructure:"title"`
	Company   string `json:"company,omitempty" mapstructure:"company"`
	StartDate string `json:"start_date,omitempty" mapstructure:"start_date"`
	EndDate   string `json:"end_date,omitempty" mapstructure:"end_date"`
	Duration  string `json:"duration,omitempty" mapstructure:"duration"`
	Months    string `json:"months,omitempty" mapstructure:"months"`
	// Fields keeps every key the source carried, stringified.
	Fields map[string]string `json:"fields,omitempty" mapstructure:"-"`
}

// EducationEntry is one education item.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty" mapstructure:"degree"`
	Institution string `json:"institution,omitempty" mapstructure:"institution"`
	Year        string `json:"year,omitempty" mapstructure:"year"`
	Field       string `json:"field,omitempty" mapstructure:"field"`
}

// PersonalInfo holds contact details; missing values are NotAvailable.
type PersonalInfo struct {
	Email    string `json:"email" mapstructure:"email"`
	Location string `json:"location" mapstructure:"location"`
	Phone    string `json:"phone" mapstructure:"phone"`
}

// SkillSet maps a category to the unique skills in it.
type SkillSet map[string]mapset.Set[string]

// Categories returns the category keys in sorted order.
func (s SkillSet) Categories() []string {
	categories := make([]string, 0, len(s))
	for category := range s {
		categories = append(categories, category)
	}
	slices.Sort(categories)
	return categories
}

// Has reports exact, case-sensitive membership. Absent categories hold nothing.
func (s SkillSet) Has(category, skill string) bool {
	set, ok := s[category]
	if !ok || set == nil {
		return false
	}
	return set.Contains(skill)
}

// Skills returns the sorted skills of a category.
func (s SkillSet) Skills(category string) []string {
	set, ok := s[category]
	if !ok || set == nil {
		return nil
	}
	skills := set.ToSlice()
	slices.Sort(skills)
	return skills
}

// Count returns the number of skills in a category.
func (s SkillSet) Count(category string) int {
	set, ok := s[category]
	if !ok || set == nil {
		return 0
	}
	return set.Cardinality()
}

// Set returns the set for a category, an empty set when it is absent.
func (s SkillSet) Set(category string) mapset.Set[string] {
	if set, ok := s[category]; ok && set != nil {
		return set
	}
	return mapset.NewThreadUnsafeSet[string]()
}

// MarshalJSON renders every category as a sorted list.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(s))
	for _, category := range s.Categories() {
		skills := s.Skills(category)
		if skills == nil {
			skills = []string{}
		}
		out[category] = skills
	}
	return json.Marshal(out)
}
