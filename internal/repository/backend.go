package repository

import (
	"context"

	"github.com/questionbase/questionbase/api/internal/domain"
)

// Backend persists questions on behalf of QuestionRepository.
//
// The repository serializes writes, so implementations never see two
// mutations at once. Each call is independent and is not retried.
type Backend interface {
	// LoadAll returns every stored question keyed by id
	LoadAll(ctx context.Context) (map[domain.QuestionID]domain.Question, error)
	// PersistInsert writes q under q.ID, replacing any existing record
	PersistInsert(ctx context.Context, q domain.Question) error
	// PersistUpdate replaces the record stored under id
	PersistUpdate(ctx context.Context, id domain.QuestionID, q domain.Question) error
	// PersistDelete removes the record stored under id
	PersistDelete(ctx context.Context, id domain.QuestionID) error
	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
}
