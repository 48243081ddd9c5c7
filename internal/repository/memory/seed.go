package memory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/questionbase/questionbase/api/internal/domain"
)

//go:embed fixtures/questions.json
var defaultSeed []byte

// DefaultSeed returns the fixture compiled into the binary
func DefaultSeed() []byte {
	return append([]byte(nil), defaultSeed...)
}

// ReadSeedFile reads and parses a seed fixture from disk
func ReadSeedFile(path string) (map[domain.QuestionID]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a fixture of the form {"<id>": Question}. Every key
// must be non-empty and equal to the id of its record.
func ParseSeed(data []byte) (map[domain.QuestionID]domain.Question, error) {
	var raw map[string]domain.Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	questions := make(map[domain.QuestionID]domain.Question, len(raw))
	for key, q := range raw {
		id, err := domain.ParseQuestionID(key)
		if err != nil {
			return nil, fmt.Errorf("invalid seed key: %w", err)
		}
		if q.ID.IsZero() {
			return nil, fmt.Errorf("seed record %q has no id", key)
		}
		if q.ID != id {
			return nil, fmt.Errorf("seed key %q does not match record id %q", key, q.ID)
		}
		questions[id] = q
	}
	return questions, nil
}
