package domain

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
)

// QuestionID identifies a question. The zero value is never produced by
// ParseQuestionID and is rejected when decoding JSON.
type QuestionID struct {
	value string
}

// ParseQuestionID wraps raw verbatim. It fails with InvalidInput iff raw is empty.
func ParseQuestionID(raw string) (QuestionID, error) {
	if raw == "" {
		return QuestionID{}, apperrors.InvalidInput("No id provided")
	}
	return QuestionID{value: raw}, nil
}

// MustParseQuestionID is ParseQuestionID for literals in fixtures and tests.
func MustParseQuestionID(raw string) QuestionID {
	id, err := ParseQuestionID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the raw identifier
func (id QuestionID) String() string {
	return id.value
}

// IsZero reports whether id was never parsed
func (id QuestionID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON encodes the identifier as a plain JSON string
func (id QuestionID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON decodes a JSON string through ParseQuestionID
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperrors.InvalidInput("id must be a string").WithError(err)
	}
	if raw == nil {
		return apperrors.InvalidInput("No id provided")
	}

	parsed, err := ParseQuestionID(*raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Question represents a stored question
type Question struct {
	ID      QuestionID `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
}

// NewQuestion creates a question; tags may be nil
func NewQuestion(id QuestionID, title, content string, tags []string) Question {
	return Question{
		ID:      id,
		Title:   title,
		Content: content,
		Tags:    tags,
	}
}

// Clone returns a copy that shares no tag storage with q.
// A nil tag list stays nil so it keeps encoding as JSON null.
func (q Question) Clone() Question {
	if q.Tags != nil {
		tags := make([]string, len(q.Tags))
		copy(tags, q.Tags)
		q.Tags = tags
	}
	return q
}

// WithID returns a copy of q stored under id
func (q Question) WithID(id QuestionID) Question {
	q.ID = id
	return q
}

func (q Question) String() string {
	return fmt.Sprintf("%s, title: %s, content: %s, tags: %v", q.ID, q.Title, q.Content, q.Tags)
}
