package filtering

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-board/internal/candidate"
	"github.com/spigell/candidate-board/internal/roster"
)

func sampleRoster() *roster.Candidates {
	return roster.New(
		candidate.Record{"name": "Low", "match": 30, "resume_id": "r-low"},
		candidate.Record{"name": "High", "match": 92, "email": "high@example.com"},
		candidate.Record{"name": "Mid", "ats_score": 71},
		candidate.Record{"name": "Tiny", "match": 0.2},
	)
}

func TestRunDefaults(t *testing.T) {
	dir := t.TempDir()
	excludePath := filepath.Join(dir, "exclude.json")

	seed := roster.New(candidate.Record{"name": "Someone", "email": "HIGH@example.com"})
	if err := roster.ToExcluded(seed.Items...).ToFile(excludePath); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	core, observed := observer.New(zapcore.InfoLevel)
	cfg := &Config{MinimumScore: 50, ExcludeFile: excludePath, Top: 5}

	result, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Defaults(), sampleRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := result.Names()
	if len(names) != 1 || names[0] != "Mid" {
		t.Fatalf("expected only Mid to remain, got %v", names)
	}

	steps := observed.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 filter step logs, got %d", len(steps))
	}
	first := steps[0].ContextMap()
	if first["name"] != "exclude_file" || first["dropped"] != int64(1) {
		t.Fatalf("unexpected first step: %v", first)
	}
}

func TestTopSortsAndTruncates(t *testing.T) {
	result, err := Run(context.Background(), &Config{Top: 2}, Deps{}, []Filter{NewTop()}, sampleRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := result.Names()
	if len(names) != 2 || names[0] != "High" || names[1] != "Mid" {
		t.Fatalf("unexpected top candidates: %v", names)
	}
}

func TestDisabledFilterIsSkipped(t *testing.T) {
	steps := []Filter{NewMinimumScore()}
	DisableByName(steps, "minimum_score", "disabled by flag")

	result, err := Run(context.Background(), &Config{MinimumScore: 101}, Deps{}, steps, sampleRoster())
	if err != nil {
		t.Fatalf("disabled filter must not be validated: %v", err)
	}
	if result.Len() != 4 {
		t.Fatalf("expected all candidates to remain, got %d", result.Len())
	}

	status := Describe(steps)[0]
	if status.Enabled || status.Reason != "disabled by flag" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		steps []Filter
	}{
		{name: "minimum score above 100", cfg: &Config{MinimumScore: 101}, steps: []Filter{NewMinimumScore()}},
		{name: "negative minimum score", cfg: &Config{MinimumScore: -1}, steps: []Filter{NewMinimumScore()}},
		{name: "negative top", cfg: &Config{Top: -3}, steps: []Filter{NewTop()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.cfg, Deps{}, tt.steps, sampleRoster()); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestExcludeFileMissingPathIsNoop(t *testing.T) {
	result, err := Run(context.Background(), &Config{}, Deps{}, []Filter{NewExcludeFile()}, sampleRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Len() != 4 {
		t.Fatalf("expected no candidates dropped, got %d left", result.Len())
	}
}

func TestDescribe(t *testing.T) {
	steps := Defaults()
	for _, step := range steps {
		if err := step.Validate(&Config{MinimumScore: 40, ExcludeFile: "seen.json", Top: 3}); err != nil {
			t.Fatalf("validate %s: %v", step.Name(), err)
		}
	}

	statuses := Describe(steps)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].Details["path"] != "seen.json" {
		t.Fatalf("unexpected exclude_file status: %+v", statuses[0])
	}
	if statuses[1].Details["minimum_score"] != "40" {
		t.Fatalf("unexpected minimum_score status: %+v", statuses[1])
	}
	if statuses[2].Details["top"] != "3" {
		t.Fatalf("unexpected top status: %+v", statuses[2])
	}
}
