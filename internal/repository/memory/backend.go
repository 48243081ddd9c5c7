// Package memory implements the process-local question backend.
//
// Records live only in the repository's in-memory view; the backend hands
// out its seed on LoadAll and accepts every write without storing it.
package memory

import (
	"context"

	"github.com/questionbase/questionbase/api/internal/domain"
)

// Backend is the transient repository.Backend
type Backend struct {
	seed map[domain.QuestionID]domain.Question
}

// New returns a backend seeded from the embedded fixture
func New() (*Backend, error) {
	return NewFromJSON(defaultSeed)
}

// NewFromJSON returns a backend seeded from a JSON fixture
func NewFromJSON(data []byte) (*Backend, error) {
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, err
	}
	return NewWithSeed(seed), nil
}

// NewFromFile returns a backend seeded from the fixture at path
func NewFromFile(path string) (*Backend, error) {
	seed, err := ReadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return NewWithSeed(seed), nil
}

// NewWithSeed returns a backend that loads a copy of seed
func NewWithSeed(seed map[domain.QuestionID]domain.Question) *Backend {
	if seed == nil {
		seed = map[domain.QuestionID]domain.Question{}
	}
	return &Backend{seed: seed}
}

func (b *Backend) LoadAll(ctx context.Context) (map[domain.QuestionID]domain.Question, error) {
	out := make(map[domain.QuestionID]domain.Question, len(b.seed))
	for id, q := range b.seed {
		out[id] = q.Clone()
	}
	return out, nil
}

func (b *Backend) PersistInsert(ctx context.Context, q domain.Question) error {
	return nil
}

func (b *Backend) PersistUpdate(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	return nil
}

func (b *Backend) PersistDelete(ctx context.Context, id domain.QuestionID) error {
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	return nil
}
