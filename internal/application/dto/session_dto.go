package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgressResponse avance derivado de una sesión.
type ProgressResponse struct {
	Percent                float64         `json:"percent"`
	CompletedSteps         int             `json:"completed_steps"`
	TotalSteps             int             `json:"total_steps"`
	RemainingHours         decimal.Decimal `json:"remaining_hours"`
	EstimatedDaysRemaining int             `json:"estimated_days_remaining"`
}

// SessionResponse salida de una sesión de onboarding con su avance.
type SessionResponse struct {
	ID           string           `json:"id"`
	VenueID      string           `json:"venue_id"`
	CandidateID  string           `json:"candidate_id"`
	TemplateID   string           `json:"template_id"`
	TemplateName string           `json:"template_name"`
	Status       string           `json:"status"`
	Steps        []StepDTO        `json:"steps"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	Version      int              `json:"version"`
	Progress     ProgressResponse `json:"progress"`
}

// SetStepStatusRequest nuevo estado de un paso.
type SetStepStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed blocked skipped"`
}

// StepTransitionDTO evento emitido por un cambio de estado.
type StepTransitionDTO struct {
	StepID    string    `json:"step_id"`
	StepTitle string    `json:"step_title"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	At        time.Time `json:"at"`
}

// StepStatusResponse resultado de SetStepStatus: sesión, evento y notificación.
type StepStatusResponse struct {
	Session      SessionResponse   `json:"session"`
	Event        StepTransitionDTO `json:"event"`
	Notification Notification      `json:"notification"`
}
