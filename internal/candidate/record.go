// Package candidate turns loosely typed candidate payloads into one canonical,
// comparable schema.
package candidate

// Record is an as-received candidate payload, usually decoded from JSON.
type Record map[string]any

// Shape identifies which upstream layout a record carries.
type Shape int

const (
	// ShapeEmpty records carry neither top-level nor nested candidate data.
	ShapeEmpty Shape = iota
	// ShapeFlat records carry candidate data at the top level.
	ShapeFlat
	// ShapeNested records carry candidate data under fullDetails.processed_data.
	ShapeNested
	// ShapeMixed records carry both; top-level fields win field by field.
	ShapeMixed
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	case ShapeMixed:
		return "mixed"
	default:
		return "empty"
	}
}

// FlatShape holds the top-level fields the normalizer probes.
type FlatShape struct {
	Name            Value
	ResumeID        Value
	MatchPercentage Value
	Match           Value
	ATSScore        Value
	Skills          Value
	Experience      Value
	Education       Value
	Email           Value
	Phone           Value
	Location        Value
}

func (f FlatShape) carriesData() bool {
	for _, v := range []Value{f.Skills, f.Experience, f.Education, f.Email, f.Phone, f.Location} {
		if v.Present() {
			return true
		}
	}
	return false
}

// NestedShape holds fullDetails.processed_data.
type NestedShape struct {
	Skills              Value
	WorkExperience      Value
	Education           Value
	PersonalInformation Value
	ATSScore            Value
}

// Raw is a parsed record: the flat view plus the nested view when present.
type Raw struct {
	Flat   FlatShape
	Nested *NestedShape
}

// Shape reports the layout of the parsed record.
func (r Raw) Shape() Shape {
	flat := r.Flat.carriesData()
	switch {
	case flat && r.Nested != nil:
		return ShapeMixed
	case flat:
		return ShapeFlat
	case r.Nested != nil:
		return ShapeNested
	default:
		return ShapeEmpty
	}
}

// Parse probes rec for every field the normalizer knows about. It never
// fails and never modifies rec.
func Parse(rec Record) Raw {
	m := map[string]any(rec)

	raw := Raw{
		Flat: FlatShape{
			Name:            lookup(m, "name"),
			ResumeID:        firstPresent(lookup(m, "resume_id"), lookup(m, "id")),
			MatchPercentage: lookup(m, "matchPercentage"),
			Match:           lookup(m, "match"),
			ATSScore:        lookup(m, "ats_score"),
			Skills:          lookup(m, "skills"),
			Experience:      lookup(m, "experience"),
			Education:       lookup(m, "education"),
			Email:           lookup(m, "email"),
			Phone:           lookup(m, "phone"),
			Location:        lookup(m, "location"),
		},
	}

	processed := lookup(lookup(m, "fullDetails").Map(), "processed_data")
	if processed.Kind() != KindMap {
		return raw
	}

	data := processed.Map()
	raw.Nested = &NestedShape{
		Skills:              lookup(data, "skills"),
		WorkExperience:      lookup(data, "work_experience"),
		Education:           lookup(data, "education"),
		PersonalInformation: firstPresent(lookup(data, "personal_information"), lookup(data, "personal_info")),
		ATSScore:            lookup(data, "ats_score"),
	}

	return raw
}

func firstPresent(values ...Value) Value {
	for _, v := range values {
		if v.Present() {
			return v
		}
	}
	return Value{}
}
