package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/application/onboarding"
)

// TemplateHandler maneja el catálogo de pasos y las plantillas de onboarding (protegido).
type TemplateHandler struct {
	uc *onboarding.TemplateUseCase
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(uc *onboarding.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// ListCatalog godoc
// @Summary      Catálogo de pasos disponibles
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StepTemplateDTO
// @Router       /api/onboarding/catalog [get]
func (h *TemplateHandler) ListCatalog(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListCatalog())
}

// GetCatalogEntry godoc
// @Summary      Entrada del catálogo por ID
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.StepTemplateDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/onboarding/catalog/{id} [get]
func (h *TemplateHandler) GetCatalogEntry(c *fiber.Ctx) error {
	out, err := h.uc.GetCatalogEntry(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plantilla
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveTemplateRequest  true  "Plantilla"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID = ""
	out, err := h.uc.Save(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out, "Plantilla creada", out.Name)
}

// Update godoc
// @Summary      Sobrescribir plantilla
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la plantilla"
// @Param        body  body  dto.SaveTemplateRequest  true  "Plantilla"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ID = c.Params("id")
	out, err := h.uc.Save(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Plantilla guardada", out.Name)
}

// Get godoc
// @Summary      Obtener plantilla
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates/{id} [get]
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar plantillas
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        department  query  string  false  "Departamento"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TemplateListResponse
// @Router       /api/onboarding/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	var in dto.TemplateListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clone godoc
// @Summary      Clonar plantilla
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      201  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates/{id}/clone [post]
func (h *TemplateHandler) Clone(c *fiber.Ctx) error {
	out, err := h.uc.Clone(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out, "Plantilla clonada", out.Name)
}

// AddStep godoc
// @Summary      Agregar paso desde el catálogo
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la plantilla"
// @Param        body  body  dto.AddStepRequest  true  "Entrada del catálogo"
// @Success      201   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates/{id}/steps [post]
func (h *TemplateHandler) AddStep(c *fiber.Ctx) error {
	var in dto.AddStepRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddStep(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out, "Paso agregado", fmt.Sprintf("%d pasos en la plantilla", len(out.Steps)))
}

// UpdateStep godoc
// @Summary      Editar paso
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la plantilla"
// @Param        stepId  path  string  true  "ID del paso"
// @Param        body    body  dto.UpdateStepRequest  true  "Campos a modificar"
// @Success      200     {object}  dto.Envelope
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates/{id}/steps/{stepId} [patch]
func (h *TemplateHandler) UpdateStep(c *fiber.Ctx) error {
	var in dto.UpdateStepRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStep(c.UserContext(), actor(c), c.Params("id"), c.Params("stepId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Paso actualizado", out.Name)
}

// RemoveStep godoc
// @Summary      Quitar paso
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la plantilla"
// @Param        stepId  path  string  true  "ID del paso"
// @Success      200     {object}  dto.Envelope
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/onboarding/templates/{id}/steps/{stepId} [delete]
func (h *TemplateHandler) RemoveStep(c *fiber.Ctx) error {
	out, err := h.uc.RemoveStep(c.UserContext(), actor(c), c.Params("id"), c.Params("stepId"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out, "Paso eliminado", fmt.Sprintf("%d pasos actualizados", len(out.AffectedSteps)))
}
