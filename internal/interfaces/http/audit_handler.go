package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/compliance"
	"github.com/jhoicas/venue-api/internal/application/dto"
)

// AuditHandler expone el log de auditoría del venue (protegido).
type AuditHandler struct {
	uc *compliance.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *compliance.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar acción en auditoría
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordAuditRequest  true  "Entrada"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/audit [post]
func (h *AuditHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordRequest(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out, "Acción registrada", out.Action)
}

// Query godoc
// @Summary      Consultar auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        user_id        query  string  false  "Usuario"
// @Param        action         query  string  false  "Acción"
// @Param        resource_type  query  string  false  "Tipo de recurso"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditQueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) Query(c *fiber.Ctx) error {
	var in dto.AuditQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Query(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Purge godoc
// @Summary      Aplicar política de retención
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        older_than_days  query  int  false  "Antigüedad en días (0 = ventana configurada)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/retention [delete]
func (h *AuditHandler) Purge(c *fiber.Ctx) error {
	out, err := h.uc.Purge(c.UserContext(), actor(c), c.QueryInt("older_than_days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Retención aplicada", fmt.Sprintf("%d entradas eliminadas", out.Deleted))
}
