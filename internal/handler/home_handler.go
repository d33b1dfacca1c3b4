package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oakfield-edu/gradecast/internal/web"
)

// Home serves the embedded browser UI.
func Home() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(web.IndexHTML)
	}
}
