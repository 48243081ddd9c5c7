// Package redis implements a durable question backend on a single Redis hash.
//
// Each field of the hash is a question id and its value the question's
// JSON encoding.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/questionbase/questionbase/api/internal/domain"
)

// QuestionBackend stores questions in the hash named key
type QuestionBackend struct {
	client  goredis.Cmdable
	key     string
	timeout time.Duration
}

// NewQuestionBackend creates a backend; a non-positive timeout leaves calls unbounded
func NewQuestionBackend(client goredis.Cmdable, key string, timeout time.Duration) *QuestionBackend {
	return &QuestionBackend{client: client, key: key, timeout: timeout}
}

// Key returns the hash name
func (b *QuestionBackend) Key() string {
	return b.key
}

// LoadAll reads the whole hash. A value that does not decode is an error.
func (b *QuestionBackend) LoadAll(ctx context.Context) (map[domain.QuestionID]domain.Question, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	fields, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return decodeFields(fields)
}

func (b *QuestionBackend) PersistInsert(ctx context.Context, q domain.Question) error {
	return b.write(ctx, "insert", q.ID, q)
}

func (b *QuestionBackend) PersistUpdate(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	return b.write(ctx, "update", id, q.WithID(id))
}

func (b *QuestionBackend) PersistDelete(ctx context.Context, id domain.QuestionID) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if err := b.client.HDel(ctx, b.key, id.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

func (b *QuestionBackend) Ping(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	return b.client.Ping(ctx).Err()
}

func (b *QuestionBackend) write(ctx context.Context, op string, id domain.QuestionID, q domain.Question) error {
	value, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to encode question: %w", err)
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if err := b.client.HSet(ctx, b.key, id.String(), value).Err(); err != nil {
		return fmt.Errorf("failed to %s question: %w", op, err)
	}
	return nil
}

func (b *QuestionBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func decodeFields(fields map[string]string) (map[domain.QuestionID]domain.Question, error) {
	questions := make(map[domain.QuestionID]domain.Question, len(fields))
	for field, value := range fields {
		id, err := domain.ParseQuestionID(field)
		if err != nil {
			return nil, fmt.Errorf("invalid hash field: %w", err)
		}

		var q domain.Question
		if err := json.Unmarshal([]byte(value), &q); err != nil {
			return nil, fmt.Errorf("failed to decode question %q: %w", field, err)
		}
		questions[id] = q.WithID(id)
	}
	return questions, nil
}
