package report

import (
	"io"

	"github.com/spigell/candidate-board/internal/compare"
	"github.com/spigell/candidate-board/internal/roster"
	"github.com/spigell/candidate-board/internal/score"
)

// RankingRow is one rendered roster line.
type RankingRow struct {
	Rank            int           `json:"rank"`
	Name            string        `json:"name"`
	ResumeID        string        `json:"resume_id,omitempty"`
	Score           score.Display `json:"score"`
	ExperienceYears int           `json:"experience_years"`
	Skills          int           `json:"skills"`
	Email           string        `json:"email,omitempty"`
}

// RankingRows flattens the roster in its current order.
func RankingRows(c *roster.Candidates, currentYear int) []RankingRow {
	rows := make([]RankingRow, 0, c.Len())
	for i, entry := range c.Items {
		skills := 0
		for _, count := range compare.SkillCountByCategory(entry.Candidate) {
			skills += count
		}

		rows = append(rows, RankingRow{
			Rank:            i + 1,
			Name:            entry.Candidate.Name,
			ResumeID:        entry.Candidate.ResumeID,
			Score:           entry.Display,
			ExperienceYears: compare.ExperienceYears(entry.Candidate, currentYear),
			Skills:          skills,
			Email:           entry.Email(),
		})
	}
	return rows
}

// Rankings writes the roster as a table or a JSON array.
func Rankings(w io.Writer, format Format, c *roster.Candidates, currentYear int) error {
	rows := RankingRows(c, currentYear)
	if format == FormatJSON {
		return writeJSON(w, rows)
	}

	tw := newTable(w)
	row(tw, "#", "NAME", "SCORE", "BAND", "YEARS", "SKILLS", "EMAIL")
	for _, r := range rows {
		row(tw, r.Rank, r.Name, r.Score.Percentage, r.Score.Band, r.ExperienceYears, r.Skills, orDash(r.Email))
	}
	return tw.Flush()
}
