package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/questionbase/questionbase/api/internal/pkg/errors"
)

// newTestApp returns an app whose error handler renders AppErrors the way
// the server does
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := apperrors.GetStatusCode(err)
			message := "Internal Server Error"
			if appErr := apperrors.GetAppError(err); appErr != nil {
				message = appErr.Message
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status, message = fiberErr.Code, fiberErr.Message
			}
			return c.Status(status).JSON(fiber.Map{"error": message})
		},
	})
}
