package roster

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/backend"
	"github.com/spigell/candidate-board/internal/candidate"
	"github.com/spigell/candidate-board/internal/logger"
)

// Join builds one record per ranking entry, attaching the matching processed
// resume as fullDetails. Resumes are matched by resume id first and by
// case-insensitive candidate name second. Rankings without a resume get a
// placeholder built from the ranking itself.
func Join(rankings *backend.Rankings, resumes []*backend.ProcessedResume, log *zap.Logger) *Candidates {
	if log == nil {
		log = zap.NewNop()
	}

	byID := make(map[string]*backend.ProcessedResume, len(resumes))
	byName := make(map[string]*backend.ProcessedResume, len(resumes))
	for _, resume := range resumes {
		if resume == nil {
			continue
		}
		if id := strings.TrimSpace(resume.DatabaseInfo.ResumeID); id != "" {
			byID[id] = resume
		}
		if name := resumeName(resume); name != "" {
			key := strings.ToLower(name)
			if _, seen := byName[key]; !seen {
				byName[key] = resume
			}
		}
	}

	c := &Candidates{}
	if rankings == nil {
		return c
	}

	for _, ranking := range rankings.Items {
		l := logger.WithCandidate(log, ranking.Name, ranking.ResumeID)

		resume, how := byID[strings.TrimSpace(ranking.ResumeID)], "resume_id"
		if resume == nil {
			resume, how = byName[strings.ToLower(strings.TrimSpace(ranking.Name))], "name"
		}

		var details map[string]any
		if resume != nil {
			l.Debug("ranking joined with processed resume", zap.String("matched_by", how))
			details = fullDetails(resume)
		} else {
			l.Debug("no processed resume for ranking; using placeholder")
			details = placeholderDetails(ranking)
		}

		c.Add(rankingRecord(ranking, details))
	}

	return c
}

func rankingRecord(ranking *backend.Ranking, details map[string]any) candidate.Record {
	rec := make(candidate.Record, len(ranking.Raw)+3)
	for k, v := range ranking.Raw {
		rec[k] = v
	}

	rec["name"] = ranking.Name
	rec["matchPercentage"] = matchPercentage(ranking)
	rec["fullDetails"] = details

	return rec
}

// matchPercentage prefers match over ats_score; zero counts as missing.
func matchPercentage(ranking *backend.Ranking) float64 {
	if ranking.Match != 0 {
		return ranking.Match
	}
	return ranking.ATSScore
}

func fullDetails(resume *backend.ProcessedResume) map[string]any {
	summary := resume.ExtractionSummary
	return map[string]any{
		"filename":       resume.Filename,
		"raw_text":       resume.RawText,
		"processed_data": resume.ProcessedData,
		"extraction_summary": map[string]any{
			"skills_count":     summary.SkillsCount,
			"career_level":     summary.CareerLevel,
			"years_experience": summary.YearsExperience,
			"ats_score":        summary.ATSScore,
		},
	}
}

func placeholderDetails(ranking *backend.Ranking) map[string]any {
	return map[string]any{
		"processed_data": map[string]any{
			"personal_info": map[string]any{
				"name":  ranking.Name,
				"email": ranking.Email,
			},
			"skills":          map[string]any{"technical": []any{}},
			"education":       []any{},
			"work_experience": []any{},
			"ats_score":       ranking.ATSScore,
		},
		"extraction_summary": map[string]any{
			"skills_count":     ranking.SkillsCount,
			"career_level":     ranking.CareerLevel,
			"years_experience": ranking.YearsExperience,
			"ats_score":        ranking.ATSScore,
		},
	}
}

func resumeName(resume *backend.ProcessedResume) string {
	for _, key := range []string{"personal_info", "personal_information"} {
		info := candidate.ValueOf(resume.ProcessedData[key]).Map()
		if name := candidate.ValueOf(info["name"]).Text(); name != "" {
			return name
		}
	}
	return ""
}
