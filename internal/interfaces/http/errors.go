package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP en un único lugar.
func writeError(c *fiber.Ctx, err error) error {
	var (
		status  = fiber.StatusInternalServerError
		code    = "INTERNAL"
		title   = "Error interno"
		details []string

		ve *domain.ValidationError
		de *domain.DependencyNotSatisfiedError
		se *domain.StorageError
	)
	switch {
	case errors.As(err, &ve):
		status, code, title = fiber.StatusBadRequest, "VALIDATION", "Datos inválidos"
		details = append(append([]string{}, ve.Fields...), ve.Cycle...)
	case errors.Is(err, domain.ErrValidation):
		status, code, title = fiber.StatusBadRequest, "VALIDATION", "Datos inválidos"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, title = fiber.StatusUnauthorized, "UNAUTHORIZED", "No autorizado"
	case errors.Is(err, domain.ErrPermissionDenied):
		status, code, title = fiber.StatusForbidden, "FORBIDDEN", "Permiso denegado"
	case errors.Is(err, domain.ErrNotFound):
		status, code, title = fiber.StatusNotFound, "NOT_FOUND", "No encontrado"
	case errors.As(err, &de):
		status, code, title = fiber.StatusConflict, "DEPENDENCY_NOT_SATISFIED", "Dependencias pendientes"
		details = de.Unmet
	case errors.Is(err, domain.ErrInvalidStageTransition):
		status, code, title = fiber.StatusConflict, "INVALID_STAGE_TRANSITION", "Cambio de etapa no permitido"
	case errors.Is(err, domain.ErrConflict):
		status, code, title = fiber.StatusConflict, "CONFLICT", "Conflicto de versión"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code, title = fiber.StatusConflict, "EMAIL_EXISTS", "Email duplicado"
	case errors.Is(err, domain.ErrTimeout):
		status, code, title = fiber.StatusGatewayTimeout, "TIMEOUT", "Tiempo de espera agotado"
	case errors.As(err, &se):
		code, title = "STORAGE", "Error de almacenamiento"
		details = []string{se.Op}
	}

	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	n := dto.Failure(title, err.Error())
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:         code,
		Message:      err.Error(),
		Details:      details,
		Notification: &n,
	})
}

// badBody respuesta común para cuerpos que no se pueden parsear.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// created responde 201 con la notificación de éxito.
func created(c *fiber.Ctx, data any, title, description string) error {
	n := dto.Success(title, description)
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Data: data, Notification: &n})
}

// ok responde 200 con la notificación de éxito.
func ok(c *fiber.Ctx, data any, title, description string) error {
	n := dto.Success(title, description)
	return c.JSON(dto.Envelope{Data: data, Notification: &n})
}
