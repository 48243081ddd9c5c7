// Package testutil provides shared test utilities for the question API.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/questionbase/questionbase/api/internal/domain"
)

// MockBackend is a testify mock of repository.Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) LoadAll(ctx context.Context) (map[domain.QuestionID]domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.QuestionID]domain.Question), args.Error(1)
}

func (m *MockBackend) PersistInsert(ctx context.Context, q domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockBackend) PersistUpdate(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

func (m *MockBackend) PersistDelete(ctx context.Context, id domain.QuestionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
