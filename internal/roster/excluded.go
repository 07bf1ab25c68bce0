package roster

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Excluded is the persisted list of candidates already reviewed.
type Excluded struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	ResumeID   string `json:",omitempty"`
	Name       string
	Email      string `json:",omitempty"`
	ExcludedAt time.Time
}

// ToExcluded converts the given entries into exclude records.
func ToExcluded(entries ...*Entry) *Excluded {
	excluded := &Excluded{}
	now := time.Now().UTC()
	for _, entry := range entries {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			ResumeID:   entry.Candidate.ResumeID,
			Name:       entry.Candidate.Name,
			Email:      entry.Email(),
			ExcludedAt: now,
		})
	}
	return excluded
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*Excluded, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Excluded{}, nil
	}

	var excluded Excluded
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *Excluded) Append(s *Excluded) {
	e.Items = append(e.Items, s.Items...)
}

// Keys returns the lower-cased resume ids and e-mails of the list.
func (e *Excluded) Keys() mapset.Set[string] {
	keys := mapset.NewThreadUnsafeSet[string]()
	for _, item := range e.Items {
		for _, key := range []string{item.ResumeID, item.Email} {
			if key = strings.ToLower(strings.TrimSpace(key)); key != "" {
				keys.Add(key)
			}
		}
	}
	return keys
}

// Matcher returns a predicate that reports whether an entry is on the list
// by resume id or e-mail.
func (e *Excluded) Matcher() func(*Entry) bool {
	keys := e.Keys()
	return func(entry *Entry) bool {
		for _, key := range []string{entry.Candidate.ResumeID, entry.Email()} {
			if key = strings.ToLower(strings.TrimSpace(key)); key != "" && keys.Contains(key) {
				return true
			}
		}
		return false
	}
}

func (e *Excluded) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return err
	}
	return nil
}
