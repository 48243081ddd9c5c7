package handler

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestDocsHandler(t *testing.T) {
	app := fiber.New()
	NewDocsHandler().RegisterRoutes(app)

	resp := do(t, app, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "application/yaml", resp.header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.body, "/questions/{id}:")

	resp = do(t, app, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, `url: "/openapi.yaml"`)
}
