package entity

import "time"

// SessionStatus estado derivado de una sesión de onboarding.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// OnboardingSession instancia de una plantilla para un candidato concreto.
type OnboardingSession struct {
	ID           string
	VenueID      string
	CandidateID  string
	TemplateID   string
	TemplateName string
	Status       SessionStatus
	Steps        []OnboardingStep
	StartedAt    time.Time
	CompletedAt  *time.Time
	Version      int
	UpdatedAt    time.Time
}

// Step devuelve el paso con el id indicado.
func (s *OnboardingSession) Step(id string) *OnboardingStep {
	for i := range s.Steps {
		if s.Steps[i].ID == id {
			return &s.Steps[i]
		}
	}
	return nil
}
