package compare

import (
	"regexp"
	"strconv"

	"github.com/spigell/candidate-board/internal/candidate"
)

// PresentLiteral marks an ongoing position in end_date.
const PresentLiteral = "Present"

var (
	yearPattern     = regexp.MustCompile(`\d{4}`)
	durationPattern = regexp.MustCompile(`(?i)(\d+)\s*year`)
)

// ExperienceYears estimates total years of experience. For each entry a
// 4-digit start year and end year are read from start_date and end_date
// (an ongoing or unreadable end counts as currentYear). Entries without a
// start year fall back to an "<N> year(s)" duration. Anything else adds 0.
func ExperienceYears(c candidate.Candidate, currentYear int) int {
	total := 0
	for _, entry := range c.Experience {
		total += entryYears(entry, currentYear)
	}
	return total
}

func entryYears(entry candidate.ExperienceEntry, currentYear int) int {
	startYear := 0
	endYear := currentYear

	if match := yearPattern.FindString(entry.StartDate); match != "" {
		startYear, _ = strconv.Atoi(match)
	}

	if entry.EndDate != "" && entry.EndDate != PresentLiteral {
		if match := yearPattern.FindString(entry.EndDate); match != "" {
			endYear, _ = strconv.Atoi(match)
		}
	}

	if entry.Duration != "" && startYear == 0 {
		if match := durationPattern.FindStringSubmatch(entry.Duration); match != nil {
			years, _ := strconv.Atoi(match[1])
			return years
		}
	}

	if startYear > 0 {
		return max(0, endYear-startYear)
	}

	return 0
}

// EducationLevel is the number of education entries.
func EducationLevel(c candidate.Candidate) int {
	return len(c.Education)
}
