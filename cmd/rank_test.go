package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/spigell/candidate-board/internal/candidate"
	"github.com/spigell/candidate-board/internal/filtering"
	"github.com/spigell/candidate-board/internal/report"
	"github.com/spigell/candidate-board/internal/roster"
)

func TestRankCandidatesOrdersWithoutTopFilter(t *testing.T) {
	tests := []struct {
		name     string
		disabled []string
		cfg      *filtering.Config
	}{
		{name: "top disabled", disabled: []string{"top"}, cfg: &filtering.Config{Top: 5}},
		{name: "all filters disabled", disabled: []string{"top", "minimum_score", "exclude_file"}, cfg: &filtering.Config{}},
		{name: "top enabled", cfg: &filtering.Config{Top: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := roster.New(
				candidate.Record{"name": "Low", "match": 20},
				candidate.Record{"name": "High", "match": 95},
				candidate.Record{"name": "Mid", "match": 60},
			)

			steps := filtering.Defaults()
			for _, name := range tt.disabled {
				filtering.DisableByName(steps, name, "disabled in test")
			}

			ranked, err := rankCandidates(context.Background(), tt.cfg, filtering.Deps{}, steps, candidates)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			rows := report.RankingRows(ranked, time.Now().Year())
			expect := []string{"High", "Mid", "Low"}
			if len(rows) != len(expect) {
				t.Fatalf("expected %d rows, got %d", len(expect), len(rows))
			}
			for i, name := range expect {
				if rows[i].Name != name || rows[i].Rank != i+1 {
					t.Fatalf("row %d: expected rank %d %s, got rank %d %s (%d%%)", i, i+1, name, rows[i].Rank, rows[i].Name, rows[i].Score.Percentage)
				}
			}
		})
	}
}
