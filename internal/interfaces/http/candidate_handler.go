package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/application/onboarding"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// CandidateHandler maneja candidatos y sus sesiones de onboarding (protegido).
type CandidateHandler struct {
	uc       *onboarding.CandidateUseCase
	sessions *onboarding.SessionUseCase
	perms    permissionChecker
}

// NewCandidateHandler construye el handler.
func NewCandidateHandler(uc *onboarding.CandidateUseCase, sessions *onboarding.SessionUseCase, perms permissionChecker) *CandidateHandler {
	return &CandidateHandler{uc: uc, sessions: sessions, perms: perms}
}

// Create godoc
// @Summary      Registrar candidato
// @Tags         candidates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCandidateRequest  true  "Candidato"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/candidates [post]
func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCandidateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out, "Candidato registrado", out.Name)
}

// Get godoc
// @Summary      Obtener candidato
// @Tags         candidates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del candidato"
// @Success      200  {object}  dto.CandidateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/candidates/{id} [get]
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar candidatos
// @Tags         candidates
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Estado"
// @Param        stage       query  string  false  "Etapa"
// @Param        department  query  string  false  "Departamento"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CandidateListResponse
// @Router       /api/candidates [get]
func (h *CandidateHandler) List(c *fiber.Ctx) error {
	var in dto.CandidateListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdvanceStage godoc
// @Summary      Mover candidato de etapa
// @Description  force=true requiere el permiso candidate.stage_force.
// @Tags         candidates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del candidato"
// @Param        body  body  dto.AdvanceStageRequest  true  "Etapa destino"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/candidates/{id}/stage [post]
func (h *CandidateHandler) AdvanceStage(c *fiber.Ctx) error {
	var in dto.AdvanceStageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a := actor(c)
	if in.Force && !h.perms.Allowed(a.Role, entity.PermCandidateStageForce) {
		return writeError(c, &domain.PermissionDeniedError{UserID: a.UserID, Role: a.Role, Action: entity.PermCandidateStageForce})
	}
	out, err := h.uc.AdvanceStage(c.UserContext(), a, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Etapa actualizada", out.From+" -> "+out.To)
}

// Reject godoc
// @Summary      Rechazar candidato
// @Tags         candidates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del candidato"
// @Param        body  body  dto.RejectCandidateRequest  true  "Motivo"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/candidates/{id}/reject [post]
func (h *CandidateHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectCandidateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reject(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Candidato rechazado", out.Name)
}

// AttachDocument godoc
// @Summary      Adjuntar referencia de documento
// @Tags         candidates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del candidato"
// @Param        body  body  dto.AttachDocumentRequest  true  "Documento"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/candidates/{id}/documents [post]
func (h *CandidateHandler) AttachDocument(c *fiber.Ctx) error {
	var in dto.AttachDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AttachDocument(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Documento adjuntado", in.Name)
}

// CreateSession godoc
// @Summary      Iniciar onboarding desde una plantilla
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del candidato"
// @Param        body  body  dto.CreateSessionRequest  true  "Plantilla"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/candidates/{id}/sessions [post]
func (h *CandidateHandler) CreateSession(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sessions.Create(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out, "Onboarding iniciado", out.TemplateName)
}

// ListSessions godoc
// @Summary      Sesiones del candidato
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del candidato"
// @Success      200  {array}  dto.SessionResponse
// @Router       /api/candidates/{id}/sessions [get]
func (h *CandidateHandler) ListSessions(c *fiber.Ctx) error {
	out, err := h.sessions.ListByCandidate(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
