package dto

import (
	"github.com/questionbase/questionbase/api/internal/domain"
)

// QuestionRequest is the body of create and update requests.
// Pointers distinguish a missing field from an empty string.
type QuestionRequest struct {
	ID      *string  `json:"id" validate:"required"`
	Title   *string  `json:"title" validate:"required"`
	Content *string  `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// ToQuestion converts a validated request into a domain question.
// An empty id fails with InvalidInput.
func (r QuestionRequest) ToQuestion() (domain.Question, error) {
	var raw string
	if r.ID != nil {
		raw = *r.ID
	}
	id, err := domain.ParseQuestionID(raw)
	if err != nil {
		return domain.Question{}, err
	}

	return domain.NewQuestion(id, deref(r.Title), deref(r.Content), r.Tags), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
