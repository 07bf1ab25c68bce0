package report

import (
	"io"

	"github.com/spigell/candidate-board/internal/backend"
)

// Uploads writes the extraction summary of processed resumes.
func Uploads(w io.Writer, format Format, resumes []*backend.ProcessedResume) error {
	if format == FormatJSON {
		return writeJSON(w, resumes)
	}

	tw := newTable(w)
	row(tw, "FILE", "RESUME ID", "STORED", "SKILLS", "EXPERIENCE", "EDUCATION", "LEVEL")
	for _, r := range resumes {
		stored := "new"
		if r.DatabaseInfo.AlreadyExists {
			stored = "existing"
		} else if !r.DatabaseInfo.SavedToDB {
			stored = "no"
		}
		s := r.ExtractionSummary
		row(tw, r.Filename, orDash(r.DatabaseInfo.ResumeID), stored, s.SkillsCount, s.ExperienceCount, s.EducationCount, orDash(s.CareerLevel))
	}
	return tw.Flush()
}
