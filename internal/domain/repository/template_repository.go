package repository

import (
	"context"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// TemplateFilter filtros del listado de plantillas.
type TemplateFilter struct {
	VenueID    string
	Department string
	Limit      int
	Offset     int
}

// TemplateRepository define el puerto de persistencia para OnboardingTemplate y sus pasos.
type TemplateRepository interface {
	// Create persiste cabecera y pasos en el orden de la plantilla.
	Create(ctx context.Context, t *entity.OnboardingTemplate) error
	// Update sobrescribe la cabecera y reemplaza la lista completa de pasos.
	Update(ctx context.Context, t *entity.OnboardingTemplate) error
	// GetByID devuelve nil, nil si la plantilla no existe.
	GetByID(ctx context.Context, id string) (*entity.OnboardingTemplate, error)
	List(ctx context.Context, f TemplateFilter) ([]*entity.OnboardingTemplate, int, error)
	IncrementUseCount(ctx context.Context, id string) error

	// Operaciones puntuales sobre pasos (sin reescribir la plantilla completa).
	AddStep(ctx context.Context, templateID string, step entity.OnboardingStep, position int) error
	UpdateStep(ctx context.Context, templateID string, step entity.OnboardingStep) error
	UpdateStepDependencies(ctx context.Context, templateID string, steps []entity.OnboardingStep) error
	DeleteStep(ctx context.Context, templateID, stepID string) error
}
