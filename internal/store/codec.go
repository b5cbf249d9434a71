package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Encode serializes tasks as a JSON array; an empty list encodes as [].
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return payload, nil
}

// Decode parses a persisted task array. Blank input and null decode to an
// empty list. Later records repeating an earlier id are dropped.
func Decode(raw []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	out := make([]model.Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}
