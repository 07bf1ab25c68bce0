package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spigell/candidate-board/internal/candidate"
)

type envelope struct {
	Candidates []candidate.Record `json:"candidates"`
}

// LoadFile reads raw records from a JSON file holding either an array of
// records or a {"candidates": [...]} envelope.
func LoadFile(path string) (*Candidates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}

	return New(records...), nil
}

func decodeRecords(data []byte) ([]candidate.Record, error) {
	var records []candidate.Record
	arrayErr := json.Unmarshal(data, &records)
	if arrayErr == nil {
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Join(arrayErr, err)
	}
	if env.Candidates == nil {
		return nil, errors.New(`expected an array of records or a "candidates" list`)
	}

	return env.Candidates, nil
}
