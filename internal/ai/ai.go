// Package ai defines the optional second opinion on a two-candidate comparison.
package ai

import (
	"context"

	"github.com/spigell/candidate-board/internal/compare"
)

// Verdict is an advisory judgement over a comparison. It never changes scores.
type Verdict struct {
	// Preferred is the name of the preferred candidate, empty when the model
	// named neither side.
	Preferred  string   `json:"preferred"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
	Highlights []string `json:"highlights,omitempty"`
	Raw        string   `json:"-"`
}

type Advisor interface {
	Advise(ctx context.Context, result *compare.Result) (*Verdict, error)
}
