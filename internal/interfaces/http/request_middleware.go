package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/pkg/logger"
)

const localError = "error"

// RequestTimeout fija un plazo al contexto de la petición. Los handlers lo
// propagan con c.UserContext() y los repositorios lo respetan.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequestLogger registra método, ruta, estado, latencia y usuario de cada petición.
// Las respuestas 5xx se registran con el error que dejó writeError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if err, ok := c.Locals(localError).(error); ok {
				ev = ev.Err(err)
			}
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return chainErr
	}
}
