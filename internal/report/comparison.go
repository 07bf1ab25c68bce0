package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/candidate-board/internal/ai"
	"github.com/spigell/candidate-board/internal/candidate"
	"github.com/spigell/candidate-board/internal/compare"
)

type comparisonJSON struct {
	*compare.Result
	Verdict *ai.Verdict `json:"verdict,omitempty"`
}

// Comparison writes a side-by-side comparison. verdict may be nil.
func Comparison(w io.Writer, format Format, result *compare.Result, verdict *ai.Verdict) error {
	if format == FormatJSON {
		return writeJSON(w, comparisonJSON{Result: result, Verdict: verdict})
	}

	a, b := result.Candidates[0], result.Candidates[1]

	tw := newTable(w)
	row(tw, "", a.Name, b.Name)
	row(tw, "Match", fmt.Sprintf("%d%% (%s)", a.Score.Percentage, a.Score.Band), fmt.Sprintf("%d%% (%s)", b.Score.Percentage, b.Score.Band))
	row(tw, "Email", a.PersonalInfo.Email, b.PersonalInfo.Email)
	row(tw, "Phone", a.PersonalInfo.Phone, b.PersonalInfo.Phone)
	row(tw, "Location", a.PersonalInfo.Location, b.PersonalInfo.Location)
	row(tw, "Experience (years)", result.Profile.ExperienceYears[0], result.Profile.ExperienceYears[1])
	row(tw, "Education entries", result.Profile.EducationLevel[0], result.Profile.EducationLevel[1])
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Skills")
	if len(result.Skills) == 0 {
		fmt.Fprintf(w, "  %s\n", noSkills)
	} else {
		tw = newTable(w)
		row(tw, "  CATEGORY", "SKILL", a.Name, b.Name)
		for i, table := range result.Skills {
			counts := result.SkillCounts[i].Counts
			row(tw, "  "+table.Category, fmt.Sprintf("(%d vs %d)", counts[0], counts[1]), "", "")
			for _, r := range table.Rows {
				row(tw, "", r.Skill, mark(r.Has[0]), mark(r.Has[1]))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, side := range result.Candidates {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", side.Name)
		writeExperience(w, side.Experience)
		writeEducation(w, side.Education)
	}

	if verdict != nil {
		fmt.Fprintln(w)
		writeVerdict(w, verdict)
	}

	return nil
}

func mark(has bool) string {
	if has {
		return "yes"
	}
	return "-"
}

func writeExperience(w io.Writer, entries []candidate.ExperienceEntry) {
	fmt.Fprintln(w, "  Experience")
	if len(entries) == 0 {
		fmt.Fprintf(w, "    %s\n", noExperience)
		return
	}
	for _, e := range entries {
		period := strings.Trim(strings.Join([]string{e.StartDate, e.EndDate}, " - "), " -")
		if period == "" {
			period = e.Duration
		}
		fmt.Fprintf(w, "    %s at %s", orDash(e.Title), orDash(e.Company))
		if period != "" {
			fmt.Fprintf(w, " (%s)", period)
		}
		fmt.Fprintln(w)
	}
}

func writeEducation(w io.Writer, entries []candidate.EducationEntry) {
	fmt.Fprintln(w, "  Education")
	if len(entries) == 0 {
		fmt.Fprintf(w, "    %s\n", noEducation)
		return
	}
	for _, e := range entries {
		line := orDash(e.Degree)
		if e.Field != "" {
			line += ", " + e.Field
		}
		if e.Institution != "" {
			line += ", " + e.Institution
		}
		if e.Year != "" {
			line += " (" + e.Year + ")"
		}
		fmt.Fprintf(w, "    %s\n", line)
	}
}

func writeVerdict(w io.Writer, v *ai.Verdict) {
	preferred := v.Preferred
	if preferred == "" {
		preferred = "no clear preference"
	}
	fmt.Fprintf(w, "AI opinion: %s (confidence %.0f%%)\n", preferred, v.Confidence*100)
	if v.Reason != "" {
		fmt.Fprintf(w, "  %s\n", v.Reason)
	}
	for _, h := range v.Highlights {
		fmt.Fprintf(w, "  - %s\n", h)
	}
}
