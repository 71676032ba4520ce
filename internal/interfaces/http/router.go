package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/auth"
	"github.com/jhoicas/venue-api/internal/application/compliance"
	"github.com/jhoicas/venue-api/internal/application/onboarding"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TemplateUC     *onboarding.TemplateUseCase
	CandidateUC    *onboarding.CandidateUseCase
	SessionUC      *onboarding.SessionUseCase
	AuditUC        *compliance.AuditUseCase
	PermissionUC   *compliance.PermissionUseCase
	ComplianceUC   *compliance.ComplianceUseCase
	AuthUC         *auth.AuthUseCase
	Matrix         compliance.PermissionMatrix
	JWTSecret      string
	RequestTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Todo /api corre con deadline, incluido el login público.
	api := app.Group("/api", RequestTimeout(deps.RequestTimeout))
	can := func(action string) fiber.Handler { return RequirePermission(deps.Matrix, action) }

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/users", can(entity.PermUserCreate), authHandler.CreateUser)

	// Catálogo y plantillas
	templates := NewTemplateHandler(deps.TemplateUC)
	ob := protected.Group("/onboarding")
	ob.Get("/catalog", can(entity.PermCatalogRead), templates.ListCatalog)
	ob.Get("/catalog/:id", can(entity.PermCatalogRead), templates.GetCatalogEntry)
	ob.Post("/templates", can(entity.PermTemplateWrite), templates.Create)
	ob.Get("/templates", can(entity.PermTemplateRead), templates.List)
	ob.Get("/templates/:id", can(entity.PermTemplateRead), templates.Get)
	ob.Put("/templates/:id", can(entity.PermTemplateWrite), templates.Update)
	ob.Post("/templates/:id/clone", can(entity.PermTemplateWrite), templates.Clone)
	ob.Post("/templates/:id/steps", can(entity.PermTemplateWrite), templates.AddStep)
	ob.Patch("/templates/:id/steps/:stepId", can(entity.PermTemplateWrite), templates.UpdateStep)
	ob.Delete("/templates/:id/steps/:stepId", can(entity.PermTemplateWrite), templates.RemoveStep)

	// Candidatos
	candidates := NewCandidateHandler(deps.CandidateUC, deps.SessionUC, deps.Matrix)
	cg := protected.Group("/candidates")
	cg.Post("/", can(entity.PermCandidateCreate), candidates.Create)
	cg.Get("/", can(entity.PermCandidateRead), candidates.List)
	cg.Get("/:id", can(entity.PermCandidateRead), candidates.Get)
	cg.Post("/:id/stage", can(entity.PermCandidateStage), candidates.AdvanceStage)
	cg.Post("/:id/reject", can(entity.PermCandidateReject), candidates.Reject)
	cg.Post("/:id/documents", can(entity.PermCandidateDocument), candidates.AttachDocument)
	cg.Post("/:id/sessions", can(entity.PermSessionCreate), candidates.CreateSession)
	cg.Get("/:id/sessions", can(entity.PermSessionRead), candidates.ListSessions)

	// Sesiones
	sessions := NewSessionHandler(deps.SessionUC)
	sg := protected.Group("/sessions")
	sg.Get("/:id", can(entity.PermSessionRead), sessions.Get)
	sg.Get("/:id/progress", can(entity.PermSessionRead), sessions.Progress)
	sg.Patch("/:id/steps/:stepId/status", can(entity.PermSessionStepUpdate), sessions.SetStepStatus)

	// Auditoría
	audit := NewAuditHandler(deps.AuditUC)
	protected.Post("/audit", can(entity.PermAuditWrite), audit.Record)
	protected.Get("/audit", can(entity.PermAuditRead), audit.Query)
	protected.Delete("/audit/retention", can(entity.PermAuditPurge), audit.Purge)

	// Cumplimiento y seguridad
	comp := NewComplianceHandler(deps.ComplianceUC, deps.PermissionUC, deps.Matrix)
	protected.Get("/security/permissions", comp.Permissions)
	protected.Get("/compliance/checks", can(entity.PermComplianceRead), comp.Checks)
	protected.Get("/compliance/score", can(entity.PermComplianceRead), comp.Score)
	protected.Get("/compliance/report", can(entity.PermComplianceReport), comp.Report)
	protected.Get("/compliance/report.pdf", can(entity.PermComplianceReport), comp.ReportPDF)
}
