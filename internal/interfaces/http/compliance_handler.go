package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/compliance"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// ComplianceHandler chequeos, puntaje, reportes y consulta de permisos (protegido).
type ComplianceHandler struct {
	uc    *compliance.ComplianceUseCase
	perms *compliance.PermissionUseCase
	roles permissionChecker
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(uc *compliance.ComplianceUseCase, perms *compliance.PermissionUseCase, roles permissionChecker) *ComplianceHandler {
	return &ComplianceHandler{uc: uc, perms: perms, roles: roles}
}

// Checks godoc
// @Summary      Ejecutar chequeos de cumplimiento
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ComplianceRunResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/compliance/checks [get]
func (h *ComplianceHandler) Checks(c *fiber.Ctx) error {
	out, err := h.uc.RunChecks(c.UserContext(), GetVenueID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Score godoc
// @Summary      Puntaje de cumplimiento
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ScoreResponse
// @Router       /api/compliance/score [get]
func (h *ComplianceHandler) Score(c *fiber.Ctx) error {
	out, err := h.uc.ComplianceScore(c.UserContext(), GetVenueID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de cumplimiento
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "summary | detailed | audit"  default(summary)
// @Success      200  {object}  dto.ComplianceReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compliance/report [get]
func (h *ComplianceHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.GenerateReport(c.UserContext(), GetVenueID(c), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de cumplimiento en PDF
// @Tags         compliance
// @Security     Bearer
// @Produce      application/pdf
// @Param        type  query  string  false  "summary | detailed | audit"  default(summary)
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compliance/report.pdf [get]
func (h *ComplianceHandler) ReportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.RenderReport(c.UserContext(), GetVenueID(c), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="compliance-report.pdf"`)
	return c.Send(pdf)
}

// Permissions godoc
// @Summary      Permisos efectivos de un usuario
// @Description  Sin user_id consulta al usuario del token; consultar a otro usuario requiere security.read.
// @Tags         security
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Usuario"
// @Param        action   query  string  false  "Acción a evaluar"
// @Success      200  {object}  dto.PermissionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/security/permissions [get]
func (h *ComplianceHandler) Permissions(c *fiber.Ctx) error {
	a := actor(c)
	userID := c.Query("user_id", a.UserID)
	if userID != a.UserID && !h.roles.Allowed(a.Role, entity.PermSecurityRead) {
		return writeError(c, &domain.PermissionDeniedError{UserID: a.UserID, Role: a.Role, Action: entity.PermSecurityRead})
	}
	out, err := h.perms.CheckPermission(c.UserContext(), userID, a.VenueID, c.Query("action"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
