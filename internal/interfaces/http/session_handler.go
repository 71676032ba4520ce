package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/application/onboarding"
)

// SessionHandler maneja las sesiones de onboarding en curso (protegido).
type SessionHandler struct {
	uc *onboarding.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *onboarding.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener sesión con su progreso
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Progress godoc
// @Summary      Progreso de la sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ProgressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/progress [get]
func (h *SessionHandler) Progress(c *fiber.Ctx) error {
	out, err := h.uc.Progress(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetStepStatus godoc
// @Summary      Cambiar estado de un paso
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la sesión"
// @Param        stepId  path  string  true  "ID del paso"
// @Param        body    body  dto.SetStepStatusRequest  true  "Nuevo estado"
// @Success      200     {object}  dto.StepStatusResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Failure      504     {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/steps/{stepId}/status [patch]
func (h *SessionHandler) SetStepStatus(c *fiber.Ctx) error {
	var in dto.SetStepStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStepStatus(c.UserContext(), actor(c), c.Params("id"), c.Params("stepId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
