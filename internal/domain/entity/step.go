package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StepType tipo de trabajo que representa un paso de onboarding.
type StepType string

const (
	StepTypeDocument StepType = "document"
	StepTypeTraining StepType = "training"
	StepTypeMeeting  StepType = "meeting"
	StepTypeSetup    StepType = "setup"
	StepTypeReview   StepType = "review"
	StepTypeTask     StepType = "task"
	StepTypeApproval StepType = "approval"
)

// Valid informa si el tipo pertenece al catálogo cerrado.
func (t StepType) Valid() bool {
	switch t {
	case StepTypeDocument, StepTypeTraining, StepTypeMeeting, StepTypeSetup,
		StepTypeReview, StepTypeTask, StepTypeApproval:
		return true
	}
	return false
}

// StepCategory área a la que pertenece un paso.
type StepCategory string

const (
	StepCategoryAdmin       StepCategory = "admin"
	StepCategoryTraining    StepCategory = "training"
	StepCategoryEquipment   StepCategory = "equipment"
	StepCategorySocial      StepCategory = "social"
	StepCategoryPerformance StepCategory = "performance"
)

// Valid informa si la categoría pertenece al catálogo cerrado.
func (c StepCategory) Valid() bool {
	switch c {
	case StepCategoryAdmin, StepCategoryTraining, StepCategoryEquipment,
		StepCategorySocial, StepCategoryPerformance:
		return true
	}
	return false
}

// StepStatus estado de un paso dentro de una plantilla o sesión.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusBlocked    StepStatus = "blocked"
	StepStatusSkipped    StepStatus = "skipped"
)

// Valid informa si el estado es conocido.
func (s StepStatus) Valid() bool {
	switch s {
	case StepStatusPending, StepStatusInProgress, StepStatusCompleted,
		StepStatusBlocked, StepStatusSkipped:
		return true
	}
	return false
}

// Settled indica que el paso ya no bloquea a sus dependientes (completed o skipped).
func (s StepStatus) Settled() bool {
	switch s {
	case StepStatusCompleted, StepStatusSkipped:
		return true
	case StepStatusPending, StepStatusInProgress, StepStatusBlocked:
		return false
	}
	return false
}

// StepTemplate entrada inmutable del catálogo de pasos reutilizables.
type StepTemplate struct {
	ID             string
	Title          string
	Type           StepType
	Category       StepCategory
	EstimatedHours decimal.Decimal
	Description    string
}

// OnboardingStep instancia mutable de un paso dentro de una plantilla o sesión.
// DependsOn referencia solo pasos del mismo contenedor.
type OnboardingStep struct {
	ID                 string
	Title              string
	Type               StepType
	Category           StepCategory
	EstimatedHours     decimal.Decimal
	Description        string
	Instructions       string
	Required           bool
	AssignedTo         *string
	DependsOn          []string
	DueDate            *time.Time
	Status             StepStatus
	CompletionCriteria []string
	Documents          []string
	Notes              *string
}

// Clone copia profunda del paso (slices y punteros incluidos).
func (s OnboardingStep) Clone() OnboardingStep {
	out := s
	out.DependsOn = cloneStrings(s.DependsOn)
	out.CompletionCriteria = cloneStrings(s.CompletionCriteria)
	out.Documents = cloneStrings(s.Documents)
	if s.AssignedTo != nil {
		v := *s.AssignedTo
		out.AssignedTo = &v
	}
	if s.Notes != nil {
		v := *s.Notes
		out.Notes = &v
	}
	if s.DueDate != nil {
		v := *s.DueDate
		out.DueDate = &v
	}
	return out
}

// DependsOnStep informa si el paso depende de id.
func (s OnboardingStep) DependsOnStep(id string) bool {
	for _, dep := range s.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
