package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeExperienceString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect map[string]string
	}{
		{
			name:  "drops empty values",
			input: "@{company=Acme; position=Dev; duration=2 years; months=}",
			expect: map[string]string{
				"company":  "Acme",
				"position": "Dev",
				"duration": "2 years",
			},
		},
		{
			name:   "tolerates missing wrapper",
			input:  "company=Trident Solutions, Chennai; position=App Development Intern",
			expect: map[string]string{"company": "Trident Solutions, Chennai", "position": "App Development Intern"},
		},
		{
			name:   "tolerates missing closing brace",
			input:  "@{company=Acme",
			expect: map[string]string{"company": "Acme"},
		},
		{
			name:   "drops pieces without separator",
			input:  "@{garbage; company = Acme ;  }",
			expect: map[string]string{"company": "Acme"},
		},
		{
			name:   "splits on first equals only",
			input:  "@{description=a=b}",
			expect: map[string]string{"description": "a=b"},
		},
		{
			name:   "drops empty keys",
			input:  "@{=value; title=Lead}",
			expect: map[string]string{"title": "Lead"},
		},
		{
			name:   "empty input",
			input:  "",
			expect: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, DecodeExperienceString(tt.input))
		})
	}
}

func TestDecodeExperienceIsIdempotent(t *testing.T) {
	structured := map[string]any{"company": "Acme", "start_date": "2020"}
	assert.Equal(t, structured, DecodeExperience(structured))

	decoded := DecodeExperience("@{company=Acme}")
	assert.Equal(t, decoded, DecodeExperience(decoded))

	assert.Equal(t, 42.0, DecodeExperience(42.0))
	assert.Nil(t, DecodeExperience(nil))
}
