package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/domain"
	"github.com/questionbase/questionbase/api/internal/dto"
	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
)

// HeaderTotalCount carries the full record count on range responses
const HeaderTotalCount = "X-Total-Count"

// QuestionStore is the repository surface the handlers need
type QuestionStore interface {
	List(ctx context.Context) []domain.Question
	ListRange(ctx context.Context, start, end int) ([]domain.Question, error)
	Get(ctx context.Context, id domain.QuestionID) (domain.Question, error)
	Count(ctx context.Context) int
	Insert(ctx context.Context, q domain.Question) error
	Update(ctx context.Context, id domain.QuestionID, q domain.Question) error
	Delete(ctx context.Context, id domain.QuestionID) (bool, error)
}

// QuestionHandler serves the /questions resource
type QuestionHandler struct {
	store  QuestionStore
	logger *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(store QuestionStore, logger *zap.Logger) *QuestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionHandler{store: store, logger: logger}
}

// RegisterRoutes registers the question routes
func (h *QuestionHandler) RegisterRoutes(router fiber.Router) {
	questions := router.Group("/questions")
	questions.Get("/", h.List)
	questions.Post("/", h.Create)
	questions.Get("/:id", h.Get)
	questions.Put("/:id", h.Update)
	questions.Delete("/:id", h.Delete)
}

// List handles GET /questions, optionally restricted to ?start=&end=
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	start, end, ranged, err := parseRange(c)
	if err != nil {
		return err
	}
	if !ranged {
		return c.JSON(h.store.List(ctx))
	}

	questions, err := h.store.ListRange(ctx, start, end)
	if err != nil {
		return err
	}

	c.Set(HeaderTotalCount, strconv.Itoa(h.store.Count(ctx)))
	return c.JSON(questions)
}

// Get handles GET /questions/:id
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	question, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// Create handles POST /questions
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	question, err := decodeQuestion(c)
	if err != nil {
		return err
	}

	if err := h.store.Insert(c.UserContext(), question); err != nil {
		return err
	}

	h.logger.Debug("question added", zap.String("question_id", question.ID.String()))
	return c.Status(fiber.StatusCreated).SendString("Question added")
}

// Update handles PUT /questions/:id. The path id wins over the body id.
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	question, err := decodeQuestion(c)
	if err != nil {
		return err
	}

	if err := h.store.Update(c.UserContext(), id, question); err != nil {
		return err
	}

	h.logger.Debug("question updated", zap.String("question_id", id.String()))
	return c.SendString("Question updated")
}

// Delete handles DELETE /questions/:id
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := h.store.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("Question")
	}

	h.logger.Debug("question deleted", zap.String("question_id", id.String()))
	return c.JSON(MessageResponse{Message: "Question deleted"})
}

func decodeQuestion(c *fiber.Ctx) (domain.Question, error) {
	var req dto.QuestionRequest
	if err := dto.DecodeAndValidate(c.Body(), &req); err != nil {
		return domain.Question{}, err
	}
	return req.ToQuestion()
}

// pathID parses the :id segment. Fiber reuses the request buffer once the
// handler returns, so the value is copied before it can reach the store.
func pathID(c *fiber.Ctx) (domain.QuestionID, error) {
	return domain.ParseQuestionID(utils.CopyString(c.Params("id")))
}
