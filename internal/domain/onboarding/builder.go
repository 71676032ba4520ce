package onboarding

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// hoursPerDay jornada usada para convertir horas estimadas en días.
var hoursPerDay = decimal.NewFromInt(8)

// NewID genera los ids de plantillas, pasos y sesiones. Reemplazable en tests.
var NewID = func() string { return uuid.New().String() }

// StepPatch campos editables de un paso. nil = sin cambio.
type StepPatch struct {
	Title              *string
	Description        *string
	Category           *entity.StepCategory
	EstimatedHours     *decimal.Decimal
	Instructions       *string
	AssignedTo         *string // "" desasigna
	Required           *bool
	DependsOn          *[]string
	CompletionCriteria *[]string
	Documents          *[]string
	DueDate            *time.Time
	Notes              *string
}

// AddStep agrega al final un paso clonado desde el catálogo: pending, requerido y sin dependencias.
// Se permiten varios pasos derivados de la misma entrada.
func AddStep(t *entity.OnboardingTemplate, st entity.StepTemplate) entity.OnboardingStep {
	step := entity.OnboardingStep{
		ID:             NewID(),
		Title:          st.Title,
		Type:           st.Type,
		Category:       st.Category,
		EstimatedHours: st.EstimatedHours,
		Description:    st.Description,
		Required:       true,
		DependsOn:      []string{},
		Status:         entity.StepStatusPending,
	}
	t.Steps = append(t.Steps, step)
	return step
}

// UpdateStep aplica patch al paso stepID. Valida el resultado sobre una copia
// antes de tocar la plantilla, de modo que un error no deja cambios parciales.
func UpdateStep(t *entity.OnboardingTemplate, stepID string, patch StepPatch) (entity.OnboardingStep, error) {
	current, idx := t.Step(stepID)
	if current == nil {
		return entity.OnboardingStep{}, domain.NewNotFoundError("paso", stepID)
	}
	next := current.Clone()

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return entity.OnboardingStep{}, domain.NewValidationError("título vacío", "title")
		}
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return entity.OnboardingStep{}, domain.NewValidationError("categoría inválida", "category")
		}
		next.Category = *patch.Category
	}
	if patch.EstimatedHours != nil {
		if !patch.EstimatedHours.IsPositive() {
			return entity.OnboardingStep{}, domain.NewValidationError("las horas estimadas deben ser positivas", "estimated_hours")
		}
		next.EstimatedHours = *patch.EstimatedHours
	}
	if patch.Instructions != nil {
		next.Instructions = *patch.Instructions
	}
	if patch.AssignedTo != nil {
		if *patch.AssignedTo == "" {
			next.AssignedTo = nil
		} else {
			v := *patch.AssignedTo
			next.AssignedTo = &v
		}
	}
	if patch.Required != nil {
		next.Required = *patch.Required
	}
	if patch.DependsOn != nil {
		next.DependsOn = dedupe(*patch.DependsOn)
	}
	if patch.CompletionCriteria != nil {
		next.CompletionCriteria = append([]string{}, (*patch.CompletionCriteria)...)
	}
	if patch.Documents != nil {
		next.Documents = append([]string{}, (*patch.Documents)...)
	}
	if patch.DueDate != nil {
		v := *patch.DueDate
		next.DueDate = &v
	}
	if patch.Notes != nil {
		v := *patch.Notes
		next.Notes = &v
	}

	if patch.DependsOn != nil {
		candidate := make([]entity.OnboardingStep, len(t.Steps))
		copy(candidate, t.Steps)
		candidate[idx] = next
		if err := validateGraph(candidate); err != nil {
			return entity.OnboardingStep{}, err
		}
	}

	t.Steps[idx] = next
	return next, nil
}

// RemoveStep elimina el paso y lo quita del dependsOn de los demás pasos.
// Devuelve los ids de los pasos cuyo dependsOn cambió.
func RemoveStep(t *entity.OnboardingTemplate, stepID string) ([]string, error) {
	_, idx := t.Step(stepID)
	if idx < 0 {
		return nil, domain.NewNotFoundError("paso", stepID)
	}
	t.Steps = append(t.Steps[:idx], t.Steps[idx+1:]...)

	var affected []string
	for i := range t.Steps {
		s := &t.Steps[i]
		if !s.DependsOnStep(stepID) {
			continue
		}
		kept := make([]string, 0, len(s.DependsOn)-1)
		for _, dep := range s.DependsOn {
			if dep != stepID {
				kept = append(kept, dep)
			}
		}
		s.DependsOn = kept
		affected = append(affected, s.ID)
	}
	return affected, nil
}

// Validate comprueba los campos obligatorios, que los ids de paso sean únicos y
// que el grafo de dependencias sea cerrado (solo ids propios) y acíclico.
func Validate(t *entity.OnboardingTemplate) error {
	var missing []string
	if strings.TrimSpace(t.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(t.Department) == "" {
		missing = append(missing, "department")
	}
	if strings.TrimSpace(t.Position) == "" {
		missing = append(missing, "position")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("campos obligatorios vacíos", missing...)
	}
	for _, s := range t.Steps {
		if !s.Type.Valid() || !s.Category.Valid() {
			return domain.NewValidationError("tipo o categoría inválidos", s.ID)
		}
		if !s.EstimatedHours.IsPositive() {
			return domain.NewValidationError("las horas estimadas deben ser positivas", s.ID)
		}
	}
	return validateGraph(t.Steps)
}

// validateGraph exige ids únicos y no vacíos antes de evaluar el grafo: el
// grafo se indexa por id.
func validateGraph(steps []entity.OnboardingStep) error {
	for _, s := range steps {
		if s.ID == "" {
			return domain.NewValidationError("paso sin id", "steps.id")
		}
	}
	if dup := DuplicateStepIDs(steps); len(dup) > 0 {
		return domain.NewValidationError("ids de paso duplicados", dup...)
	}
	if unknown := UnknownDependencies(steps); len(unknown) > 0 {
		return domain.NewValidationError("dependencias hacia pasos inexistentes", unknown...)
	}
	if cycle := FindCycle(steps); cycle != nil {
		return &domain.ValidationError{Message: "el grafo de dependencias tiene un ciclo", Cycle: cycle}
	}
	return nil
}

// Clone copia profunda de la plantilla con ids nuevos, useCount en 0 y sin marca de default.
func Clone(t *entity.OnboardingTemplate, now time.Time) *entity.OnboardingTemplate {
	out := *t
	out.ID = NewID()
	out.Steps = CloneSteps(t.Steps)
	out.RequiredDocuments = append([]string{}, t.RequiredDocuments...)
	out.Assignees = append([]string{}, t.Assignees...)
	out.Tags = append([]string{}, t.Tags...)
	out.UseCount = 0
	out.IsDefault = false
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out
}

// CloneSteps copia los pasos asignando ids nuevos y reescribe dependsOn hacia esos ids.
func CloneSteps(steps []entity.OnboardingStep) []entity.OnboardingStep {
	remap := make(map[string]string, len(steps))
	for _, s := range steps {
		remap[s.ID] = NewID()
	}
	out := make([]entity.OnboardingStep, 0, len(steps))
	for _, s := range steps {
		c := s.Clone()
		c.ID = remap[s.ID]
		deps := make([]string, 0, len(s.DependsOn))
		for _, dep := range s.DependsOn {
			if id, ok := remap[dep]; ok {
				deps = append(deps, id)
			}
		}
		c.DependsOn = deps
		out = append(out, c)
	}
	return out
}

// EstimateDays convierte horas en días de jornada, redondeando hacia arriba.
func EstimateDays(hours decimal.Decimal) int {
	if !hours.IsPositive() {
		return 0
	}
	return int(hours.Div(hoursPerDay).Ceil().IntPart())
}

// Normalize completa los valores derivados antes de persistir: estimatedDays
// cuando no se declaró y dependsOn sin duplicados.
func Normalize(t *entity.OnboardingTemplate) {
	t.Name = strings.TrimSpace(t.Name)
	t.Department = strings.TrimSpace(t.Department)
	t.Position = strings.TrimSpace(t.Position)
	for i := range t.Steps {
		t.Steps[i].DependsOn = dedupe(t.Steps[i].DependsOn)
		if t.Steps[i].Status == "" {
			t.Steps[i].Status = entity.StepStatusPending
		}
	}
	if t.EstimatedDays <= 0 {
		t.EstimatedDays = EstimateDays(t.TotalHours())
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
