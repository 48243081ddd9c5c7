package testutil

import (
	"fmt"

	"github.com/questionbase/questionbase/api/internal/domain"
)

// SeedQuestion returns the record shipped in the default seed fixture.
func SeedQuestion() domain.Question {
	return domain.NewQuestion(domain.MustParseQuestionID("1"), "How?", "Please help", []string{"general"})
}

// NewTestQuestion creates a question with default values under id.
func NewTestQuestion(id string) domain.Question {
	return domain.NewQuestion(
		domain.MustParseQuestionID(id),
		"title "+id,
		"content "+id,
		[]string{"test"},
	)
}

// NewTestQuestions creates n questions with ids q-00 … q-(n-1), zero padded
// so that their id order matches their index.
func NewTestQuestions(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewTestQuestion(fmt.Sprintf("q-%02d", i)))
	}
	return out
}

// QuestionMap keys questions by id, the shape Backend.LoadAll returns.
func QuestionMap(questions ...domain.Question) map[domain.QuestionID]domain.Question {
	out := make(map[domain.QuestionID]domain.Question, len(questions))
	for _, q := range questions {
		out[q.ID] = q
	}
	return out
}
