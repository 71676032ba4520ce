package onboarding

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// NewSession instancia la plantilla para el candidato: clona los pasos con ids
// nuevos, reinicia su estado a pending y abre la sesión en in_progress.
func NewSession(c *entity.Candidate, t *entity.OnboardingTemplate, now time.Time) (*entity.OnboardingSession, error) {
	if c.Status == entity.CandidateStatusRejected {
		return nil, domain.NewValidationError("el candidato fue rechazado", c.ID)
	}
	if len(t.Steps) == 0 {
		return nil, domain.NewValidationError("la plantilla no tiene pasos", t.ID)
	}
	steps := CloneSteps(t.Steps)
	for i := range steps {
		steps[i].Status = entity.StepStatusPending
	}
	return &entity.OnboardingSession{
		ID:           NewID(),
		VenueID:      c.VenueID,
		CandidateID:  c.ID,
		TemplateID:   t.ID,
		TemplateName: t.Name,
		Status:       entity.SessionStatusInProgress,
		Steps:        steps,
		StartedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RefreshStatus deriva el estado de la sesión: completed cuando todos los pasos
// están completed o skipped. Devuelve true si el estado cambió.
func RefreshStatus(s *entity.OnboardingSession, now time.Time) bool {
	done := len(s.Steps) > 0
	for _, st := range s.Steps {
		if !st.Status.Settled() {
			done = false
			break
		}
	}
	next := entity.SessionStatusInProgress
	if done {
		next = entity.SessionStatusCompleted
	}
	if next == s.Status {
		return false
	}
	s.Status = next
	if done {
		at := now
		s.CompletedAt = &at
	} else {
		s.CompletedAt = nil
	}
	return true
}

// Progress avance derivado de los pasos de una sesión.
type Progress struct {
	Percent                float64         `json:"percent"`
	CompletedSteps         int             `json:"completed_steps"`
	TotalSteps             int             `json:"total_steps"`
	RemainingHours         decimal.Decimal `json:"remaining_hours"`
	EstimatedDaysRemaining int             `json:"estimated_days_remaining"`
}

// ComputeProgress función pura: se recalcula en cada lectura, sin caché.
// percent = completados / total * 100; las horas restantes suman todo paso no completado.
func ComputeProgress(s *entity.OnboardingSession) Progress {
	p := Progress{TotalSteps: len(s.Steps), RemainingHours: decimal.Zero}
	for _, st := range s.Steps {
		if st.Status == entity.StepStatusCompleted {
			p.CompletedSteps++
			continue
		}
		p.RemainingHours = p.RemainingHours.Add(st.EstimatedHours)
	}
	if p.TotalSteps > 0 {
		p.Percent = float64(p.CompletedSteps) / float64(p.TotalSteps) * 100
	}
	p.EstimatedDaysRemaining = EstimateDays(p.RemainingHours)
	return p
}
