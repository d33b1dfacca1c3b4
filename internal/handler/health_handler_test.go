package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-edu/gradecast/internal/config"
	"github.com/oakfield-edu/gradecast/internal/handler"
)

func TestHealthCheckReportsStudentCount(t *testing.T) {
	cfg := config.Config{AppName: "Gradecast API", AppEnv: "test"}

	app := fiber.New()
	app.Get("/health", handler.HealthCheck(cfg, func() int { return 3 }))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                   `json:"success"`
		Data    handler.HealthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "ok", response.Data.Status)
	require.Equal(t, "Gradecast API", response.Data.Service)
	require.Equal(t, "test", response.Data.Environment)
	require.Equal(t, 3, response.Data.StudentsCount)
	require.False(t, response.Data.Timestamp.IsZero())
}

func TestHomeServesUI(t *testing.T) {
	app := fiber.New()
	app.Get("/", handler.Home())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
}
