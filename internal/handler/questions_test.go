package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/domain"
	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
	"github.com/questionbase/questionbase/api/internal/repository"
	"github.com/questionbase/questionbase/api/internal/repository/memory"
	"github.com/questionbase/questionbase/api/internal/testutil"
)

// MockQuestionStore is a mock implementation of QuestionStore
type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) List(ctx context.Context) []domain.Question {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Question)
}

func (m *MockQuestionStore) ListRange(ctx context.Context, start, end int) ([]domain.Question, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionStore) Get(ctx context.Context, id domain.QuestionID) (domain.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Question), args.Error(1)
}

func (m *MockQuestionStore) Count(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockQuestionStore) Insert(ctx context.Context, q domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionStore) Update(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

func (m *MockQuestionStore) Delete(ctx context.Context, id domain.QuestionID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newQuestionApp(store QuestionStore) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(zap.NewNop(), nil),
		UnescapePath: true,
	})
	NewQuestionHandler(store, zap.NewNop()).RegisterRoutes(app)
	app.Use(NotFound)
	return app
}

// newSeededApp serves the embedded seed fixture through a real repository
func newSeededApp(t *testing.T) (*fiber.App, *repository.QuestionRepository) {
	t.Helper()

	backend, err := memory.New()
	require.NoError(t, err)
	repo, err := repository.New(context.Background(), backend, zap.NewNop())
	require.NoError(t, err)

	return newQuestionApp(repo), repo
}

type response struct {
	status int
	header http.Header
	body   string
}

func do(t *testing.T, app *fiber.App, method, target, body string) response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: string(raw)}
}

const seedJSON = `{"id":"1","title":"How?","content":"Please help","tags":["general"]}`

func TestQuestionHandler_SeedScenarios(t *testing.T) {
	t.Run("list returns the seed", func(t *testing.T) {
		app, _ := newSeededApp(t)

		resp := do(t, app, http.MethodGet, "/questions", "")
		assert.Equal(t, http.StatusOK, resp.status)
		assert.JSONEq(t, "["+seedJSON+"]", resp.body)
		assert.Empty(t, resp.header.Get(HeaderTotalCount))
	})

	t.Run("range past the count is not found", func(t *testing.T) {
		app, _ := newSeededApp(t)

		resp := do(t, app, http.MethodGet, "/questions?start=0&end=5", "")
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.JSONEq(t, `{"error":"Question not found"}`, resp.body)
	})

	t.Run("deleting an unknown id is not found", func(t *testing.T) {
		app, repo := newSeededApp(t)

		resp := do(t, app, http.MethodDelete, "/questions/nope", "")
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.JSONEq(t, `{"error":"Question not found"}`, resp.body)
		assert.Equal(t, 1, repo.Count(context.Background()))
	})
}

func TestQuestionHandler_Lifecycle(t *testing.T) {
	app, repo := newSeededApp(t)

	resp := do(t, app, http.MethodPost, "/questions", `{"id":"2","title":"Why?","content":"Because","tags":null}`)
	require.Equal(t, http.StatusCreated, resp.status)
	assert.Equal(t, "Question added", resp.body)

	resp = do(t, app, http.MethodGet, "/questions/2", "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"id":"2","title":"Why?","content":"Because","tags":null}`, resp.body)

	resp = do(t, app, http.MethodPut, "/questions/2", `{"id":"ignored","title":"Why not?","content":"Because","tags":["x"]}`)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Question updated", resp.body)

	resp = do(t, app, http.MethodGet, "/questions/2", "")
	assert.JSONEq(t, `{"id":"2","title":"Why not?","content":"Because","tags":["x"]}`, resp.body)

	_, err := repo.Get(context.Background(), domain.MustParseQuestionID("ignored"))
	assert.True(t, apperrors.IsNotFound(err))

	resp = do(t, app, http.MethodGet, "/questions?start=1&end=2", "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "2", resp.header.Get(HeaderTotalCount))
	assert.JSONEq(t, `[{"id":"2","title":"Why not?","content":"Because","tags":["x"]}]`, resp.body)

	resp = do(t, app, http.MethodDelete, "/questions/2", "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"message":"Question deleted"}`, resp.body)

	resp = do(t, app, http.MethodGet, "/questions/2", "")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.JSONEq(t, `{"error":"Question not found"}`, resp.body)
}

func TestQuestionHandler_PathIDs(t *testing.T) {
	app, _ := newSeededApp(t)

	resp := do(t, app, http.MethodPost, "/questions", `{"id":"a b","title":"T","content":"C"}`)
	require.Equal(t, http.StatusCreated, resp.status)

	resp = do(t, app, http.MethodGet, "/questions/a%20b", "")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, `"id":"a b"`)

	// the stored id must survive buffer reuse by later requests
	for i := 0; i < 3; i++ {
		do(t, app, http.MethodGet, "/questions/zzz", "")
	}
	resp = do(t, app, http.MethodGet, "/questions", "")
	assert.Contains(t, resp.body, `"id":"a b"`)
}

func TestQuestionHandler_ListRangeParameters(t *testing.T) {
	app, _ := newSeededApp(t)

	tests := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"only start", "?start=0", http.StatusBadRequest, `{"error":"Both start and end parameters are required"}`},
		{"only end", "?end=1", http.StatusBadRequest, `{"error":"Both start and end parameters are required"}`},
		{"non numeric", "?start=a&end=1", http.StatusBadRequest, `{"error":"Range parameters must be non-negative integers"}`},
		{"negative", "?start=-1&end=1", http.StatusBadRequest, `{"error":"Range parameters must be non-negative integers"}`},
		{"inverted", "?start=1&end=0", http.StatusBadRequest, `{"error":"Range start must be less than end"}`},
		{"empty range", "?start=0&end=0", http.StatusBadRequest, `{"error":"Range start must be less than end"}`},
		{"exact", "?start=0&end=1", http.StatusOK, "[" + seedJSON + "]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, http.MethodGet, "/questions"+tt.query, "")
			assert.Equal(t, tt.status, resp.status)
			assert.JSONEq(t, tt.body, resp.body)
		})
	}
}

func TestQuestionHandler_InvalidBodies(t *testing.T) {
	app, repo := newSeededApp(t)

	bodies := map[string]string{
		"not json":      `nope`,
		"missing title": `{"id":"9","content":"C"}`,
		"empty id":      `{"id":"","title":"T","content":"C"}`,
		"numeric id":    `{"id":9,"title":"T","content":"C"}`,
		"unknown field": `{"id":"9","title":"T","content":"C","votes":1}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp := do(t, app, http.MethodPost, "/questions", body)
			assert.Equal(t, http.StatusBadRequest, resp.status)
			assert.Contains(t, resp.body, `"error"`)

			resp = do(t, app, http.MethodPut, "/questions/1", body)
			assert.Equal(t, http.StatusBadRequest, resp.status)
		})
	}

	resp := do(t, app, http.MethodPost, "/questions", "")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"error":"Request body is empty"}`, resp.body)

	assert.Equal(t, 1, repo.Count(context.Background()))
}

func TestQuestionHandler_UpdateUnknown(t *testing.T) {
	app, _ := newSeededApp(t)

	resp := do(t, app, http.MethodPut, "/questions/nope", `{"id":"nope","title":"T","content":"C"}`)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.JSONEq(t, `{"error":"Question not found"}`, resp.body)
}

func TestQuestionHandler_BackendErrors(t *testing.T) {
	cause := errors.New("connection refused")
	q := testutil.NewTestQuestion("5")

	store := new(MockQuestionStore)
	store.On("Insert", mock.Anything, q).Return(apperrors.Backend(cause))
	store.On("Update", mock.Anything, q.ID, q).Return(apperrors.Backend(cause))
	store.On("Delete", mock.Anything, q.ID).Return(false, apperrors.Backend(cause))
	app := newQuestionApp(store)

	body := `{"id":"5","title":"title 5","content":"content 5","tags":["test"]}`
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		target := "/questions/5"
		if method == http.MethodPost {
			target = "/questions"
		}
		reqBody := body
		if method == http.MethodDelete {
			reqBody = ""
		}

		resp := do(t, app, method, target, reqBody)
		assert.Equal(t, http.StatusInternalServerError, resp.status, method)
		assert.JSONEq(t, `{"error":"Backend operation failed"}`, resp.body, method)
		assert.NotContains(t, resp.body, cause.Error())
	}

	store.AssertExpectations(t)
}

func TestNotFound(t *testing.T) {
	app, _ := newSeededApp(t)

	for _, target := range []string{"/", "/questions/1/answers", "/nothing"} {
		resp := do(t, app, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, resp.status, target)
		assert.Equal(t, "404 Not Found", resp.body, target)
	}
}

func TestErrorHandler(t *testing.T) {
	var reported []error
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(zap.NewNop(), func(_ *fiber.Ctx, err error) {
			reported = append(reported, err)
		}),
	})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("secret detail") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Request Entity Too Large") })
	app.Get("/app", func(c *fiber.Ctx) error { return apperrors.MissingParameters("") })

	resp := do(t, app, http.MethodGet, "/plain", "")
	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, resp.body)

	resp = do(t, app, http.MethodGet, "/fiber", "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.status)
	assert.JSONEq(t, `{"error":"Request Entity Too Large"}`, resp.body)

	resp = do(t, app, http.MethodGet, "/app", "")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"error":"Missing parameters"}`, resp.body)

	assert.Len(t, reported, 1)
}
