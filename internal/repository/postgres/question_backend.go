// Package postgres implements the durable question backend on PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/questionbase/questionbase/api/internal/domain"
	"github.com/questionbase/questionbase/api/internal/pkg/database"
)

const schema = `
	CREATE TABLE IF NOT EXISTS questions (
		id      TEXT PRIMARY KEY,
		title   TEXT NOT NULL,
		content TEXT NOT NULL,
		tags    TEXT[]
	)
`

// QuestionBackend stores questions in the questions table.
// Every call is a single statement bounded by the configured timeout.
type QuestionBackend struct {
	db      *database.PostgresDB
	timeout time.Duration
}

// NewQuestionBackend creates a backend; a non-positive timeout leaves calls unbounded
func NewQuestionBackend(db *database.PostgresDB, timeout time.Duration) *QuestionBackend {
	return &QuestionBackend{db: db, timeout: timeout}
}

// EnsureSchema creates the questions table if it does not exist
func (b *QuestionBackend) EnsureSchema(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if _, err := b.db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create questions table: %w", err)
	}
	return nil
}

// LoadAll reads every row
func (b *QuestionBackend) LoadAll(ctx context.Context) (map[domain.QuestionID]domain.Question, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	rows, err := b.db.Pool.Query(ctx, `SELECT id, title, content, tags FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	defer rows.Close()

	questions := make(map[domain.QuestionID]domain.Question)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return questions, nil
}

// PersistInsert upserts q
func (b *QuestionBackend) PersistInsert(ctx context.Context, q domain.Question) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO questions (id, title, content, tags)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, content = EXCLUDED.content, tags = EXCLUDED.tags
	`

	if _, err := b.db.Pool.Exec(ctx, query, q.ID.String(), q.Title, q.Content, q.Tags); err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// PersistUpdate rewrites the row for id. A missing row is an error.
func (b *QuestionBackend) PersistUpdate(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE questions
		SET title = $2, content = $3, tags = $4
		WHERE id = $1
	`

	tag, err := b.db.Pool.Exec(ctx, query, id.String(), q.Title, q.Content, q.Tags)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update question: no row for id %q", id)
	}
	return nil
}

// PersistDelete removes the row for id
func (b *QuestionBackend) PersistDelete(ctx context.Context, id domain.QuestionID) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if _, err := b.db.Pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id.String()); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// Ping checks the connection
func (b *QuestionBackend) Ping(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	return b.db.Ping(ctx)
}

func (b *QuestionBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		rawID, title, content string
		tags                  []string
	)
	if err := row.Scan(&rawID, &title, &content, &tags); err != nil {
		return domain.Question{}, fmt.Errorf("failed to scan question: %w", err)
	}

	id, err := domain.ParseQuestionID(rawID)
	if err != nil {
		return domain.Question{}, fmt.Errorf("failed to scan question: %w", err)
	}
	return domain.NewQuestion(id, title, content, tags), nil
}
