package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oakfield-edu/gradecast/internal/config"
	"github.com/oakfield-edu/gradecast/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Environment   string    `json:"environment"`
	StudentsCount int       `json:"students_count"`
}

// HealthCheck returns a handler that reports liveness and the stored record count.
func HealthCheck(cfg config.Config, count func() int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:        "ok",
			Timestamp:     time.Now().UTC(),
			Service:       cfg.AppName,
			Environment:   cfg.AppEnv,
			StudentsCount: count(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
