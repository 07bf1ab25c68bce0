package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type rankingsResponse struct {
	Candidates []Item `json:"candidates"`
}

// Rankings is the ranked candidate list, best match first.
type Rankings struct {
	Items []*Ranking
}

// Ranking is one entry of the ranked list. Raw keeps the entry as received.
type Ranking struct {
	Name            string         `mapstructure:"name"`
	Email           string         `mapstructure:"email"`
	ATSScore        float64        `mapstructure:"ats_score"`
	Match           float64        `mapstructure:"match"`
	CareerLevel     string         `mapstructure:"career_level"`
	YearsExperience float64        `mapstructure:"years_experience"`
	SkillsCount     int            `mapstructure:"skills_count"`
	ResumeID        string         `mapstructure:"resume_id"`
	Raw             map[string]any `mapstructure:"-"`
}

// Rankings fetches the ranked candidates.
func (c *Client) Rankings(ctx context.Context) (*Rankings, error) {
	var response rankingsResponse
	if err := c.getJSON(ctx, rankingsPath, &response); err != nil {
		return nil, fmt.Errorf("fetching rankings: %w", err)
	}

	rankings, err := decodeRankings(response.Candidates)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got rankings from backend", zap.Int("candidates", rankings.Len()))

	return rankings, nil
}

func decodeRankings(items []Item) (*Rankings, error) {
	rankings := &Rankings{Items: make([]*Ranking, 0, len(items))}

	for i, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ranking %d: expected object, got %T", i, item)
		}

		ranking := &Ranking{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           ranking,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("ranking %d: %w", i, err)
		}
		ranking.Raw = raw

		rankings.Items = append(rankings.Items, ranking)
	}

	return rankings, nil
}

func (r *Rankings) Len() int {
	return len(r.Items)
}

func (r *Rankings) Names() []string {
	names := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		names = append(names, v.Name)
	}

	return names
}

// FindByName matches names case-insensitively.
func (r *Rankings) FindByName(name string) *Ranking {
	for _, ranking := range r.Items {
		if strings.EqualFold(ranking.Name, name) {
			return ranking
		}
	}

	return nil
}
