package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/venue-api/internal/application/auth"
	"github.com/jhoicas/venue-api/internal/application/compliance"
	"github.com/jhoicas/venue-api/internal/application/onboarding"
	domainob "github.com/jhoicas/venue-api/internal/domain/onboarding"
	"github.com/jhoicas/venue-api/internal/infrastructure/authz"
	infrapdf "github.com/jhoicas/venue-api/internal/infrastructure/pdf"
	"github.com/jhoicas/venue-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/venue-api/internal/interfaces/http"
	"github.com/jhoicas/venue-api/pkg/config"
	"github.com/jhoicas/venue-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Dur("request_timeout", cfg.HTTP.RequestTimeout).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	candidateRepo := postgres.NewCandidateRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	staffRepo := postgres.NewStaffRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalog, err := domainob.DefaultCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de pasos")
	}
	matrix, err := authz.NewMatrix()
	if err != nil {
		log.Fatal().Err(err).Msg("matriz de permisos")
	}

	opts := compliance.Options{
		HighWeight:       cfg.Compliance.HighWeight,
		IssueWeight:      cfg.Compliance.IssueWeight,
		RetentionDays:    cfg.Compliance.RetentionDays,
		RecentAuditLimit: cfg.Compliance.RecentAuditLimit,
	}

	templateUC := onboarding.NewTemplateUseCase(templateRepo, txRunner, catalog)
	candidateUC := onboarding.NewCandidateUseCase(candidateRepo, txRunner)
	sessionUC := onboarding.NewSessionUseCase(sessionRepo, candidateRepo, templateRepo, txRunner)
	auditUC := compliance.NewAuditUseCase(auditRepo, txRunner, opts)
	permissionUC := compliance.NewPermissionUseCase(userRepo, matrix)
	// PDF: reporte de cumplimiento del venue
	complianceUC := compliance.NewComplianceUseCase(staffRepo, auditRepo, infrapdf.NewMarotoReportRenderer(), opts, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Venue API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TemplateUC:     templateUC,
		CandidateUC:    candidateUC,
		SessionUC:      sessionUC,
		AuditUC:        auditUC,
		PermissionUC:   permissionUC,
		ComplianceUC:   complianceUC,
		AuthUC:         authUC,
		Matrix:         matrix,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
