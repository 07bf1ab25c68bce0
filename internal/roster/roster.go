// Package roster holds the working list of candidates: raw records as
// received, their normalized view and display score.
package roster

import (
	"cmp"
	"slices"
	"strings"

	"github.com/spigell/candidate-board/internal/candidate"
	"github.com/spigell/candidate-board/internal/score"
)

// Entry is one candidate of the roster.
type Entry struct {
	Record    candidate.Record
	Candidate candidate.Candidate
	Display   score.Display
}

// Email returns the candidate e-mail or an empty string when unknown.
func (e *Entry) Email() string {
	if email := e.Candidate.PersonalInfo.Email; email != candidate.NotAvailable {
		return email
	}
	return ""
}

type Candidates struct {
	Items []*Entry
}

// New normalizes records into a roster.
func New(records ...candidate.Record) *Candidates {
	c := &Candidates{Items: make([]*Entry, 0, len(records))}
	for _, rec := range records {
		c.Add(rec)
	}
	return c
}

// Add normalizes rec and appends it.
func (c *Candidates) Add(rec candidate.Record) *Entry {
	normalized := candidate.Normalize(rec)
	entry := &Entry{
		Record:    rec,
		Candidate: normalized,
		Display:   score.DisplayOf(normalized.MatchPercentage),
	}
	c.Items = append(c.Items, entry)
	return entry
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))

	for _, v := range c.Items {
		names = append(names, v.Candidate.Name)
	}

	return names
}

// FindByName matches names case-insensitively and returns the first hit.
func (c *Candidates) FindByName(name string) *Entry {
	name = strings.TrimSpace(name)
	for _, entry := range c.Items {
		if strings.EqualFold(entry.Candidate.Name, name) {
			return entry
		}
	}

	return nil
}

// Normalized returns the canonical candidates in roster order.
func (c *Candidates) Normalized() []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(c.Items))
	for _, entry := range c.Items {
		out = append(out, entry.Candidate)
	}
	return out
}

// Records returns the raw records in roster order.
func (c *Candidates) Records() []candidate.Record {
	out := make([]candidate.Record, 0, len(c.Items))
	for _, entry := range c.Items {
		out = append(out, entry.Record)
	}
	return out
}

// SortByScore orders the roster by display percentage, best first. Ties keep
// their current order.
func (c *Candidates) SortByScore() {
	slices.SortStableFunc(c.Items, func(a, b *Entry) int {
		return cmp.Compare(b.Display.Percentage, a.Display.Percentage)
	})
}

// Keep truncates the roster to the first n entries and returns the names of
// the dropped ones.
func (c *Candidates) Keep(n int) []string {
	if n < 0 || n >= len(c.Items) {
		return nil
	}

	var dropped []string
	for _, entry := range c.Items[n:] {
		dropped = append(dropped, entry.Candidate.Name)
	}
	c.Items = c.Items[:n]

	return dropped
}

// Exclude removes every entry for which drop returns true and returns the
// names of the removed entries.
func (c *Candidates) Exclude(drop func(*Entry) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, entry := range c.Items {
		if drop(entry) {
			excluded = append(excluded, entry.Candidate.Name)
			continue
		}
		kept = append(kept, entry)
	}
	clear(c.Items[len(kept):])
	c.Items = kept

	return excluded
}
