package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/candidate-board/internal/roster"
)

type minimumScoreFilter struct {
	switchable
	minimum int
}

// NewMinimumScore creates a filter that removes candidates whose display
// percentage is below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumScore < 0 || cfg.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %d", cfg.MinimumScore)
	}
	f.minimum = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, c *roster.Candidates) (*roster.Candidates, Step, error) {
	initial := c.Len()
	if f.minimum == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	removed := c.Exclude(func(e *roster.Entry) bool {
		return e.Display.Percentage < f.minimum
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates below minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}

type topFilter struct {
	switchable
	n int
}

// NewTop creates a filter that keeps the N best scored candidates.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Validate(cfg *Config) error {
	f.n = 0
	if cfg == nil {
		return nil
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", cfg.Top)
	}
	f.n = cfg.Top
	return nil
}

func (f *topFilter) Apply(_ context.Context, deps Deps, c *roster.Candidates) (*roster.Candidates, Step, error) {
	initial := c.Len()
	c.SortByScore()
	if f.n == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	removed := c.Keep(f.n)
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Debug("keeping best candidates only",
			zap.Int("top", f.n),
			zap.Strings("excluded_candidates", removed),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *topFilter) Status() Status {
	details := map[string]string{}
	if f.n > 0 {
		details["top"] = strconv.Itoa(f.n)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
