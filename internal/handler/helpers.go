package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/questionbase/questionbase/api/internal/middleware"
	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// errorResponse writes a JSON error body with the given status.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{Error: message})
}

// ErrorHandler renders any error a handler or middleware returns. AppErrors
// keep their status and message, fiber errors their code; anything else is
// a 500 whose cause is logged but never sent. report, when set, receives
// every 5xx error.
func ErrorHandler(logger *zap.Logger, report func(*fiber.Ctx, error)) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := apperrors.Internal("").Message

		var fiberErr *fiber.Error
		if appErr := apperrors.GetAppError(err); appErr != nil {
			status, message = appErr.StatusCode, appErr.Message
		} else if errors.As(err, &fiberErr) {
			status, message = fiberErr.Code, fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
			if report != nil {
				report(c, err)
			}
		}

		return errorResponse(c, status, message)
	}
}

// NotFound answers every unmatched route with a plain-text 404.
func NotFound(c *fiber.Ctx) error {
	status := fiber.StatusNotFound
	return c.Status(status).SendString(strconv.Itoa(status) + " " + fasthttp.StatusMessage(status))
}

// parseRange reads the start and end query parameters. ok is false when
// both are absent. Exactly one present is MissingParameters; a value that
// is not a non-negative integer is InvalidRange.
func parseRange(c *fiber.Ctx) (start, end int, ok bool, err error) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")

	switch {
	case rawStart == "" && rawEnd == "":
		return 0, 0, false, nil
	case rawStart == "" || rawEnd == "":
		return 0, 0, false, apperrors.MissingParameters("Both start and end parameters are required")
	}

	if start, err = parseQueryIndex(rawStart); err != nil {
		return 0, 0, false, err
	}
	if end, err = parseQueryIndex(rawEnd); err != nil {
		return 0, 0, false, err
	}
	return start, end, true, nil
}

// parseQueryIndex parses a non-negative integer query value.
func parseQueryIndex(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.InvalidRange("Range parameters must be non-negative integers")
	}
	return n, nil
}
