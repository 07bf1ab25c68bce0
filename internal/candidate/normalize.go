package candidate

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mitchellh/mapstructure"
)

// Normalize converts an as-received record into a Candidate. It is total:
// malformed or missing fields degrade to empty collections or NotAvailable.
func Normalize(rec Record) Candidate {
	return NormalizeRaw(Parse(rec))
}

// NormalizeRaw is Normalize over an already parsed record.
func NormalizeRaw(raw Raw) Candidate {
	return Candidate{
		Name:            resolveName(raw),
		ResumeID:        raw.Flat.ResumeID.Text(),
		MatchPercentage: resolveMatch(raw),
		Skills:          resolveSkills(raw),
		Experience:      resolveExperience(raw),
		Education:       resolveEducation(raw),
		PersonalInfo:    resolvePersonalInfo(raw),
	}
}

func resolveName(raw Raw) string {
	if name := raw.Flat.Name.Text(); name != "" {
		return name
	}
	if raw.Nested != nil {
		if name := lookup(raw.Nested.PersonalInformation.Map(), "name").Text(); name != "" {
			return name
		}
	}
	return UnknownName
}

// resolveMatch picks the first non-zero score; a present zero still beats
// having no score at all.
func resolveMatch(raw Raw) float64 {
	sources := []Value{raw.Flat.MatchPercentage, raw.Flat.Match, raw.Flat.ATSScore}
	if raw.Nested != nil {
		sources = append(sources, raw.Nested.ATSScore)
	}

	sawZero := false
	for _, source := range sources {
		f, ok := source.Number()
		if !ok {
			continue
		}
		if f != 0 {
			return f
		}
		sawZero = true
	}

	if sawZero {
		return 0
	}
	return math.NaN()
}

func resolveSkills(raw Raw) SkillSet {
	top := raw.Flat.Skills
	if top.Kind() == KindList && len(top.List()) > 0 {
		return SkillSet{GeneralCategory: skillSetOf(top)}
	}

	if raw.Nested != nil {
		nested := raw.Nested.Skills
		switch nested.Kind() {
		case KindMap:
			return categorised(nested.Map())
		case KindList:
			if len(nested.List()) > 0 {
				return SkillSet{GeneralCategory: skillSetOf(nested)}
			}
		case KindAbsent, KindNull, KindString, KindNumber, KindBool, KindUnknown:
		}
	}

	switch top.Kind() {
	case KindMap:
		return categorised(top.Map())
	case KindAbsent, KindNull, KindString, KindNumber, KindBool, KindList, KindUnknown:
		return SkillSet{}
	}

	return SkillSet{}
}

func categorised(m map[string]any) SkillSet {
	skills := make(SkillSet, len(m))
	for category, list := range m {
		skills[category] = skillSetOf(ValueOf(list))
	}
	return skills
}

// skillSetOf reads a category value. Null, empty and non-list values other
// than a single non-empty string mean no skills.
func skillSetOf(v Value) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()

	switch v.Kind() {
	case KindList:
		for _, item := range v.List() {
			if s, ok := item.(string); ok && s != "" {
				set.Add(s)
			}
		}
	case KindString:
		if s := v.Raw().(string); s != "" {
			set.Add(s)
		}
	case KindAbsent, KindNull, KindNumber, KindBool, KindMap, KindUnknown:
	}

	return set
}

func resolveExperience(raw Raw) []ExperienceEntry {
	top := raw.Flat.Experience
	if top.Kind() == KindList && len(top.List()) > 0 {
		return experienceEntries(top.List())
	}

	if raw.Nested == nil {
		return []ExperienceEntry{}
	}

	nested := raw.Nested.WorkExperience
	switch nested.Kind() {
	case KindList:
		return experienceEntries(nested.List())
	case KindMap, KindString:
		return experienceEntries([]any{nested.Raw()})
	case KindAbsent, KindNull, KindNumber, KindBool, KindUnknown:
	}

	return []ExperienceEntry{}
}

func experienceEntries(items []any) []ExperienceEntry {
	entries := make([]ExperienceEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, experienceEntry(DecodeExperience(item)))
	}
	return entries
}

func experienceEntry(item any) ExperienceEntry {
	var fields map[string]string
	switch typed := item.(type) {
	case map[string]string:
		fields = typed
	default:
		fields = stringFields(ValueOf(item).Map())
	}

	var entry ExperienceEntry
	_ = decodeFields(fields, &entry)

	if entry.Title == "" {
		entry.Title = firstField(fields, "position", "role", "job_title")
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}

	return entry
}

func resolveEducation(raw Raw) []EducationEntry {
	top := raw.Flat.Education
	if top.Kind() == KindList && len(top.List()) > 0 {
		return educationEntries(top.List())
	}

	if raw.Nested == nil {
		return []EducationEntry{}
	}

	nested := raw.Nested.Education
	switch nested.Kind() {
	case KindList:
		return educationEntries(nested.List())
	case KindMap:
		return educationEntries([]any{nested.Raw()})
	case KindAbsent, KindNull, KindString, KindNumber, KindBool, KindUnknown:
	}

	return []EducationEntry{}
}

func educationEntries(items []any) []EducationEntry {
	entries := make([]EducationEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, educationEntry(ValueOf(item)))
	}
	return entries
}

func educationEntry(v Value) EducationEntry {
	var entry EducationEntry

	switch v.Kind() {
	case KindMap:
		fields := stringFields(v.Map())
		_ = decodeFields(fields, &entry)
		if entry.Institution == "" {
			entry.Institution = firstField(fields, "school", "university", "college")
		}
		if entry.Field == "" {
			entry.Field = firstField(fields, "field_of_study", "major")
		}
		if entry.Year == "" {
			entry.Year = firstField(fields, "graduation_year", "end_date")
		}
	case KindString:
		entry.Degree = v.Text()
	case KindAbsent, KindNull, KindNumber, KindBool, KindList, KindUnknown:
	}

	return entry
}

func resolvePersonalInfo(raw Raw) PersonalInfo {
	flat := raw.Flat
	if flat.Email.Truthy() || flat.Phone.Truthy() {
		return PersonalInfo{
			Email:    orNotAvailable(flat.Email.Text()),
			Location: orNotAvailable(flat.Location.Text()),
			Phone:    orNotAvailable(flat.Phone.Text()),
		}
	}

	if raw.Nested != nil && raw.Nested.PersonalInformation.Kind() == KindMap {
		fields := stringFields(raw.Nested.PersonalInformation.Map())

		var info PersonalInfo
		_ = decodeFields(fields, &info)
		if info.Phone == "" {
			info.Phone = fields["contact"]
		}

		return PersonalInfo{
			Email:    orNotAvailable(info.Email),
			Location: orNotAvailable(info.Location),
			Phone:    orNotAvailable(info.Phone),
		}
	}

	return PersonalInfo{Email: NotAvailable, Location: NotAvailable, Phone: NotAvailable}
}

// decodeFields maps stringified fields onto a tagged struct. Fields the
// target does not know are ignored. A failed decode leaves target partially
// filled; callers in this package treat that as a best effort.
func decodeFields(fields map[string]string, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}

func firstField(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := fields[key]; value != "" {
			return value
		}
	}
	return ""
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
