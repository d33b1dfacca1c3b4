package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/oakfield-edu/gradecast/internal/dto"
	"github.com/oakfield-edu/gradecast/internal/service"
	"github.com/oakfield-edu/gradecast/internal/utils"
)

// StudentHandler exposes the student record CRUD surface.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires student routes.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", response)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if service.IsValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, service.ValidationMessage(err))
		}
		h.logger.Error().Err(err).Msg("failed to create student record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create student record")
	}

	return utils.SendCreated(c, "student record created", response)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	response, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Int("student_id", id).Msg("failed to fetch student record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch student record")
	}

	return utils.SendSuccess(c, "student retrieved", response)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	response, err := h.service.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Int("student_id", id).Msg("failed to delete student record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete student record")
	}

	return utils.SendSuccess(c, "student deleted", response)
}
