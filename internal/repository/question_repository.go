package repository

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/domain"
	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
	"github.com/questionbase/questionbase/api/internal/pkg/metrics"
)

const resourceQuestion = "Question"

// QuestionRepository is the concurrency-safe question store
type QuestionRepository struct {
	backend Backend
	logger  *zap.Logger

	mu        sync.RWMutex
	questions map[domain.QuestionID]domain.Question
}

// New loads every record from backend and returns a ready repository.
// A load failure is returned as a BackendError.
func New(ctx context.Context, backend Backend, logger *zap.Logger) (*QuestionRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loaded, err := backend.LoadAll(ctx)
	if err != nil {
		logger.Error("failed to load questions", zap.Error(err))
		return nil, apperrors.Backend(err)
	}

	questions := make(map[domain.QuestionID]domain.Question, len(loaded))
	for id, q := range loaded {
		if id.IsZero() {
			continue
		}
		questions[id] = q.WithID(id).Clone()
	}

	metrics.SetStoreRecords(len(questions))
	logger.Info("question repository loaded", zap.Int("questions", len(questions)))

	return &QuestionRepository{
		backend:   backend,
		logger:    logger,
		questions: questions,
	}, nil
}

// List returns every stored question ordered by id
func (r *QuestionRepository) List(ctx context.Context) []domain.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metrics.RecordStoreOperation("list", metrics.ResultOK)
	return r.snapshot()
}

// ListRange returns the half-open slice [start, end) of the id-ordered
// records. Negative bounds or start >= end fail with InvalidRange; a
// bound past the record count fails with NotFound. Bounds are not clamped.
func (r *QuestionRepository) ListRange(ctx context.Context, start, end int) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if start < 0 || end < 0 {
		metrics.RecordStoreOperation("list_range", metrics.ResultInvalid)
		return nil, apperrors.InvalidRange("Range bounds must not be negative")
	}
	if start >= end {
		metrics.RecordStoreOperation("list_range", metrics.ResultInvalid)
		return nil, apperrors.InvalidRange("Range start must be less than end")
	}

	all := r.snapshot()
	if start >= len(all) || end > len(all) {
		metrics.RecordStoreOperation("list_range", metrics.ResultNotFound)
		return nil, apperrors.NotFound(resourceQuestion)
	}

	metrics.RecordStoreOperation("list_range", metrics.ResultOK)
	return all[start:end], nil
}

// Get returns the question stored under id
func (r *QuestionRepository) Get(ctx context.Context, id domain.QuestionID) (domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		metrics.RecordStoreOperation("get", metrics.ResultNotFound)
		return domain.Question{}, apperrors.NotFound(resourceQuestion)
	}

	metrics.RecordStoreOperation("get", metrics.ResultOK)
	return q.Clone(), nil
}

// Count returns the number of stored questions
func (r *QuestionRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions)
}

// Insert stores q under q.ID, replacing any existing record
func (r *QuestionRepository) Insert(ctx context.Context, q domain.Question) error {
	if q.ID.IsZero() {
		metrics.RecordStoreOperation("insert", metrics.ResultInvalid)
		return apperrors.InvalidInput("No id provided")
	}
	q = q.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.PersistInsert(context.WithoutCancel(ctx), q); err != nil {
		return r.backendFailure("insert", q.ID, err)
	}

	r.questions[q.ID] = q
	r.applied("insert", q.ID)
	return nil
}

// Update replaces the question stored under id. The stored record always
// carries id, whatever q.ID holds. An absent id fails with NotFound.
func (r *QuestionRepository) Update(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	stored := q.WithID(id).Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[id]; !ok {
		metrics.RecordStoreOperation("update", metrics.ResultNotFound)
		return apperrors.NotFound(resourceQuestion)
	}

	if err := r.backend.PersistUpdate(context.WithoutCancel(ctx), id, stored); err != nil {
		return r.backendFailure("update", id, err)
	}

	r.questions[id] = stored
	r.applied("update", id)
	return nil
}

// Delete removes the question stored under id. It reports false, without
// touching the backend, when id is absent.
func (r *QuestionRepository) Delete(ctx context.Context, id domain.QuestionID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[id]; !ok {
		metrics.RecordStoreOperation("delete", metrics.ResultNotFound)
		return false, nil
	}

	if err := r.backend.PersistDelete(context.WithoutCancel(ctx), id); err != nil {
		return false, r.backendFailure("delete", id, err)
	}

	delete(r.questions, id)
	r.applied("delete", id)
	return true, nil
}

// Ping checks the backend
func (r *QuestionRepository) Ping(ctx context.Context) error {
	return r.backend.Ping(ctx)
}

// snapshot must be called with r.mu held
func (r *QuestionRepository) snapshot() []domain.Question {
	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// applied must be called with r.mu held
func (r *QuestionRepository) applied(op string, id domain.QuestionID) {
	metrics.RecordStoreOperation(op, metrics.ResultOK)
	metrics.SetStoreRecords(len(r.questions))
	r.logger.Debug("question "+op+" applied", zap.String("question_id", id.String()))
}

func (r *QuestionRepository) backendFailure(op string, id domain.QuestionID, err error) error {
	metrics.RecordStoreOperation(op, metrics.ResultError)
	r.logger.Error("backend "+op+" failed",
		zap.String("question_id", id.String()),
		zap.Error(err),
	)
	return apperrors.Backend(err)
}
