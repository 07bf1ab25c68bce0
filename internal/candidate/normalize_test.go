package candidate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nested(processed map[string]any) Record {
	return Record{
		"name": "Jane Roe",
		"fullDetails": map[string]any{
			"processed_data": processed,
		},
	}
}

func withTopSkills(rec Record) Record {
	rec["skills"] = map[string]any{"backend": []any{"Go"}}
	return rec
}

func TestNormalizeTopLevelSkillsWin(t *testing.T) {
	rec := Record{
		"name":   "John Doe",
		"skills": []any{"Go"},
		"fullDetails": map[string]any{
			"processed_data": map[string]any{
				"skills": map[string]any{"backend": []any{"Rust"}},
			},
		},
	}

	c := Normalize(rec)

	assert.Equal(t, []string{GeneralCategory}, c.Skills.Categories())
	assert.True(t, c.Skills.Has(GeneralCategory, "Go"))
	assert.False(t, c.Skills.Has("backend", "Rust"))
}

func TestNormalizeSkillsPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		rec        Record
		categories []string
		counts     map[string]int
	}{
		{
			name:       "nested categorised when top level list is empty",
			rec:        Record{"skills": []any{}, "fullDetails": map[string]any{"processed_data": map[string]any{"skills": map[string]any{"backend": []any{"Go", "Go", "Rust"}, "frontend": nil}}}},
			categories: []string{"backend", "frontend"},
			counts:     map[string]int{"backend": 2, "frontend": 0},
		},
		{
			name:       "nested flat list becomes general",
			rec:        nested(map[string]any{"skills": []any{"SQL", "Python"}}),
			categories: []string{GeneralCategory},
			counts:     map[string]int{GeneralCategory: 2},
		},
		{
			name:       "top level mapping used as-is",
			rec:        Record{"skills": map[string]any{"cloud": []string{"AWS", "GCP"}, "soft": ""}},
			categories: []string{"cloud", "soft"},
			counts:     map[string]int{"cloud": 2, "soft": 0},
		},
		{
			name:       "nested empty string falls through to top level mapping",
			rec:        withTopSkills(nested(map[string]any{"skills": ""})),
			categories: []string{"backend"},
			counts:     map[string]int{"backend": 1},
		},
		{
			name:       "nested zero falls through to top level mapping",
			rec:        withTopSkills(nested(map[string]any{"skills": 0})),
			categories: []string{"backend"},
			counts:     map[string]int{"backend": 1},
		},
		{
			name:       "nested false falls through to top level mapping",
			rec:        withTopSkills(nested(map[string]any{"skills": false})),
			categories: []string{"backend"},
			counts:     map[string]int{"backend": 1},
		},
		{
			name:       "nested empty list falls through to top level mapping",
			rec:        withTopSkills(nested(map[string]any{"skills": []any{}})),
			categories: []string{"backend"},
			counts:     map[string]int{"backend": 1},
		},
		{
			name:       "nested empty list alone adds no general category",
			rec:        nested(map[string]any{"skills": []any{}}),
			categories: []string{},
			counts:     map[string]int{},
		},
		{
			name:       "malformed skills degrade to empty",
			rec:        Record{"skills": 42},
			categories: []string{},
			counts:     map[string]int{},
		},
		{
			name:       "missing skills",
			rec:        Record{},
			categories: []string{},
			counts:     map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Normalize(tt.rec)
			assert.Equal(t, tt.categories, c.Skills.Categories())
			for category, count := range tt.counts {
				assert.Equal(t, count, c.Skills.Count(category), category)
			}
		})
	}
}

func TestNormalizeSkillLookupIsExact(t *testing.T) {
	c := Normalize(Record{"skills": []any{"React"}})

	assert.True(t, c.Skills.Has(GeneralCategory, "React"))
	assert.False(t, c.Skills.Has(GeneralCategory, "react"))
	assert.False(t, c.Skills.Has(GeneralCategory, "Reac"))
	assert.False(t, c.Skills.Has("frontend", "React"))
}

func TestNormalizeExperience(t *testing.T) {
	t.Run("top level strings are decoded", func(t *testing.T) {
		c := Normalize(Record{
			"experience": []any{
				"@{company=Acme; position=Dev; duration=2 years; months=}",
				map[string]any{"title": "Lead", "company": "Globex", "start_date": "2019", "end_date": "Present"},
			},
		})

		require.Len(t, c.Experience, 2)
		assert.Equal(t, "Acme", c.Experience[0].Company)
		assert.Equal(t, "Dev", c.Experience[0].Title)
		assert.Equal(t, "2 years", c.Experience[0].Duration)
		assert.Empty(t, c.Experience[0].Months)
		assert.Equal(t, "Lead", c.Experience[1].Title)
		assert.Equal(t, "2019", c.Experience[1].StartDate)
		assert.Equal(t, "Present", c.Experience[1].EndDate)
	})

	t.Run("nested work experience", func(t *testing.T) {
		c := Normalize(nested(map[string]any{
			"work_experience": []any{map[string]any{"company": "Initech", "start_date": 2018.0}},
		}))

		require.Len(t, c.Experience, 1)
		assert.Equal(t, "Initech", c.Experience[0].Company)
		assert.Equal(t, "2018", c.Experience[0].StartDate)
	})

	t.Run("malformed entries keep their position", func(t *testing.T) {
		c := Normalize(Record{"experience": []any{7, "@{company=Acme}"}})

		require.Len(t, c.Experience, 2)
		assert.Equal(t, ExperienceEntry{}, c.Experience[0])
		assert.Equal(t, "Acme", c.Experience[1].Company)
	})

	t.Run("missing", func(t *testing.T) {
		assert.Empty(t, Normalize(Record{}).Experience)
	})
}

func TestNormalizeEducation(t *testing.T) {
	t.Run("top level list", func(t *testing.T) {
		c := Normalize(Record{"education": []any{map[string]any{"degree": "BSc", "institution": "MIT", "year": 2015.0}}})

		require.Len(t, c.Education, 1)
		assert.Equal(t, EducationEntry{Degree: "BSc", Institution: "MIT", Year: "2015"}, c.Education[0])
	})

	t.Run("nested bare mapping is wrapped", func(t *testing.T) {
		c := Normalize(nested(map[string]any{"education": map[string]any{"degree": "MSc", "university": "ETH"}}))

		require.Len(t, c.Education, 1)
		assert.Equal(t, "MSc", c.Education[0].Degree)
		assert.Equal(t, "ETH", c.Education[0].Institution)
	})

	t.Run("empty top level falls back to nested", func(t *testing.T) {
		rec := nested(map[string]any{"education": []any{map[string]any{"degree": "PhD"}, map[string]any{"degree": "MSc"}}})
		rec["education"] = []any{}

		assert.Len(t, Normalize(rec).Education, 2)
	})
}

func TestNormalizePersonalInfo(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		expect PersonalInfo
	}{
		{
			name:   "top level fields with defaults",
			rec:    Record{"email": "jane@example.com"},
			expect: PersonalInfo{Email: "jane@example.com", Location: NotAvailable, Phone: NotAvailable},
		},
		{
			name: "top level wins over nested",
			rec: func() Record {
				r := nested(map[string]any{"personal_information": map[string]any{"email": "nested@example.com", "location": "Berlin"}})
				r["phone"] = "+1 555"
				return r
			}(),
			expect: PersonalInfo{Email: NotAvailable, Location: NotAvailable, Phone: "+1 555"},
		},
		{
			name:   "nested with contact fallback",
			rec:    nested(map[string]any{"personal_information": map[string]any{"email": "jane@example.com", "location": "Berlin", "contact": "+49 30"}}),
			expect: PersonalInfo{Email: "jane@example.com", Location: "Berlin", Phone: "+49 30"},
		},
		{
			name:   "personal_info alias",
			rec:    nested(map[string]any{"personal_info": map[string]any{"phone": "123"}}),
			expect: PersonalInfo{Email: NotAvailable, Location: NotAvailable, Phone: "123"},
		},
		{
			name:   "empty email does not count as present",
			rec:    Record{"email": ""},
			expect: PersonalInfo{Email: NotAvailable, Location: NotAvailable, Phone: NotAvailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Normalize(tt.rec).PersonalInfo)
		})
	}
}

func TestNormalizeNameAndMatch(t *testing.T) {
	c := Normalize(Record{"name": "John", "match": 0, "ats_score": 72})
	assert.Equal(t, "John", c.Name)
	assert.Equal(t, 72.0, c.MatchPercentage)

	c = Normalize(Record{"matchPercentage": "0.4"})
	assert.Equal(t, UnknownName, c.Name)
	assert.InDelta(t, 0.4, c.MatchPercentage, 1e-9)

	c = Normalize(Record{"match": 0})
	assert.True(t, c.HasMatch())
	assert.Zero(t, c.MatchPercentage)

	c = Normalize(nested(map[string]any{"personal_info": map[string]any{"name": "Nested Name"}}))
	assert.Equal(t, "Jane Roe", c.Name)
	assert.True(t, math.IsNaN(c.MatchPercentage))
	assert.False(t, c.HasMatch())
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	payload := `{"name":"A","skills":["Go"],"experience":["@{company=Acme}"],"fullDetails":{"processed_data":{"education":{"degree":"BSc"}}}}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	first := Normalize(rec)
	second := Normalize(rec)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(out))
	assert.Equal(t, first.Skills.Categories(), second.Skills.Categories())
	assert.Equal(t, first.Experience, second.Experience)
}

func TestDecodeFields(t *testing.T) {
	var entry EducationEntry
	require.NoError(t, decodeFields(map[string]string{"degree": "BSc", "-": "stray", "unknown": "x"}, &entry))
	assert.Equal(t, EducationEntry{Degree: "BSc"}, entry)

	assert.Error(t, decodeFields(map[string]string{"degree": "BSc"}, EducationEntry{}))
}

func TestParseShape(t *testing.T) {
	assert.Equal(t, ShapeEmpty, Parse(Record{"name": "x"}).Shape())
	assert.Equal(t, ShapeFlat, Parse(Record{"skills": []any{"Go"}}).Shape())
	assert.Equal(t, ShapeNested, Parse(nested(map[string]any{})).Shape())

	mixed := nested(map[string]any{})
	mixed["email"] = "a@b.c"
	assert.Equal(t, ShapeMixed, Parse(mixed).Shape())
}

func TestSkillSetMarshalJSON(t *testing.T) {
	c := Normalize(Record{"skills": map[string]any{"backend": []any{"Rust", "Go"}, "empty": nil}})

	out, err := json.Marshal(c.Skills)
	require.NoError(t, err)
	assert.JSONEq(t, `{"backend":["Go","Rust"],"empty":[]}`, string(out))
}
