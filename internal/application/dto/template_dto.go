package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StepTemplateDTO entrada del catálogo de pasos.
type StepTemplateDTO struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Type           string          `json:"type"`
	Category       string          `json:"category"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	Description    string          `json:"description"`
}

// StepDTO paso de una plantilla o sesión.
type StepDTO struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title" validate:"required,max=200"`
	Type               string          `json:"type" validate:"required,oneof=document training meeting setup review task approval"`
	Category           string          `json:"category" validate:"required,oneof=admin training equipment social performance"`
	EstimatedHours     decimal.Decimal `json:"estimated_hours"`
	Description        string          `json:"description"`
	Instructions       string          `json:"instructions"`
	Required           bool            `json:"required"`
	AssignedTo         *string         `json:"assigned_to,omitempty"`
	DependsOn          []string        `json:"depends_on"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	Status             string          `json:"status" validate:"omitempty,oneof=pending in_progress completed blocked skipped"`
	CompletionCriteria []string        `json:"completion_criteria"`
	Documents          []string        `json:"documents"`
	Notes              *string         `json:"notes,omitempty"`
}

// SaveTemplateRequest entrada para crear o sobrescribir una plantilla.
// ID vacío = plantilla nueva.
type SaveTemplateRequest struct {
	ID                string    `json:"id"`
	Name              string    `json:"name" validate:"required,max=200"`
	Department        string    `json:"department" validate:"required,max=120"`
	Position          string    `json:"position" validate:"required,max=120"`
	Description       string    `json:"description"`
	EstimatedDays     int       `json:"estimated_days" validate:"min=0"`
	Steps             []StepDTO `json:"steps" validate:"dive"`
	RequiredDocuments []string  `json:"required_documents"`
	Assignees         []string  `json:"assignees"`
	Tags              []string  `json:"tags"`
	IsDefault         bool      `json:"is_default"`
}

// TemplateResponse salida de una plantilla.
type TemplateResponse struct {
	ID                string          `json:"id"`
	VenueID           string          `json:"venue_id"`
	Name              string          `json:"name"`
	Department        string          `json:"department"`
	Position          string          `json:"position"`
	Description       string          `json:"description"`
	EstimatedDays     int             `json:"estimated_days"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	Steps             []StepDTO       `json:"steps"`
	RequiredDocuments []string        `json:"required_documents"`
	Assignees         []string        `json:"assignees"`
	Tags              []string        `json:"tags"`
	IsDefault         bool            `json:"is_default"`
	UseCount          int             `json:"use_count"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TemplateListRequest filtros del listado de plantillas.
type TemplateListRequest struct {
	Department string `query:"department"`
	PageRequest
}

// TemplateListResponse página de plantillas.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AddStepRequest agrega un paso desde el catálogo.
type AddStepRequest struct {
	StepTemplateID string `json:"step_template_id" validate:"required"`
}

// UpdateStepRequest campos editables de un paso; ausente = sin cambio.
type UpdateStepRequest struct {
	Title              *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description"`
	Category           *string          `json:"category" validate:"omitempty,oneof=admin training equipment social performance"`
	EstimatedHours     *decimal.Decimal `json:"estimated_hours"`
	Instructions       *string          `json:"instructions"`
	AssignedTo         *string          `json:"assigned_to"`
	Required           *bool            `json:"required"`
	DependsOn          *[]string        `json:"depends_on"`
	CompletionCriteria *[]string        `json:"completion_criteria"`
	Documents          *[]string        `json:"documents"`
	DueDate            *time.Time       `json:"due_date"`
	Notes              *string          `json:"notes"`
}

// RemoveStepResponse resultado de quitar un paso.
type RemoveStepResponse struct {
	TemplateID    string   `json:"template_id"`
	RemovedStepID string   `json:"removed_step_id"`
	AffectedSteps []string `json:"affected_steps"`
}
