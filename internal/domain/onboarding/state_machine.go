package onboarding

import (
	"sort"
	"time"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// StepTransition evento que describe un cambio de estado. El llamador lo
// reenvía a la auditoría y al feed de actividad.
type StepTransition struct {
	StepID    string            `json:"step_id"`
	StepTitle string            `json:"step_title"`
	From      entity.StepStatus `json:"from"`
	To        entity.StepStatus `json:"to"`
	At        time.Time         `json:"at"`
}

// SetStatus mueve step a next. completed es terminal; entrar a completed exige
// que cada dependencia esté completed o skipped en allSteps (un id ausente
// cuenta como pendiente). Cualquier otro destino se acepta sin condiciones.
func SetStatus(step *entity.OnboardingStep, next entity.StepStatus, allSteps []entity.OnboardingStep, at time.Time) (StepTransition, error) {
	if !next.Valid() {
		return StepTransition{}, domain.NewValidationError("estado de paso inválido", string(next))
	}
	if step.Status == entity.StepStatusCompleted {
		return StepTransition{}, domain.NewValidationError("el paso ya está completado", step.ID)
	}

	if next == entity.StepStatusCompleted {
		if unmet := unmetDependencies(step, allSteps); len(unmet) > 0 {
			return StepTransition{}, &domain.DependencyNotSatisfiedError{StepID: step.ID, Unmet: unmet}
		}
	}

	ev := StepTransition{
		StepID:    step.ID,
		StepTitle: step.Title,
		From:      step.Status,
		To:        next,
		At:        at,
	}
	step.Status = next
	return ev, nil
}

func unmetDependencies(step *entity.OnboardingStep, allSteps []entity.OnboardingStep) []string {
	status := make(map[string]entity.StepStatus, len(allSteps))
	for _, s := range allSteps {
		status[s.ID] = s.Status
	}
	var unmet []string
	for _, dep := range step.DependsOn {
		st, ok := status[dep]
		if !ok || !st.Settled() {
			unmet = append(unmet, dep)
		}
	}
	sort.Strings(unmet)
	return unmet
}
