package dto

import "time"

// CreateCandidateRequest entrada para registrar un candidato.
type CreateCandidateRequest struct {
	Name            string     `json:"name" validate:"required,max=200"`
	Email           string     `json:"email" validate:"required,email"`
	Phone           string     `json:"phone" validate:"omitempty,max=40"`
	Position        string     `json:"position" validate:"required,max=120"`
	Department      string     `json:"department" validate:"required,max=120"`
	ApplicationDate *time.Time `json:"application_date"`
	Skills          []string   `json:"skills"`
	AssignedManager *string    `json:"assigned_manager"`
	StartDate       *time.Time `json:"start_date"`
	EmploymentType  string     `json:"employment_type" validate:"required,oneof=full_time part_time contractor volunteer"`
}

// CandidateDocumentDTO documento entregado por el candidato.
type CandidateDocumentDTO struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
}

// CandidateResponse salida de un candidato.
type CandidateResponse struct {
	ID              string                 `json:"id"`
	VenueID         string                 `json:"venue_id"`
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	Position        string                 `json:"position"`
	Department      string                 `json:"department"`
	Status          string                 `json:"status"`
	Stage           string                 `json:"stage"`
	ApplicationDate time.Time              `json:"application_date"`
	Skills          []string               `json:"skills"`
	Documents       []CandidateDocumentDTO `json:"documents"`
	AssignedManager *string                `json:"assigned_manager,omitempty"`
	StartDate       *time.Time             `json:"start_date,omitempty"`
	EmploymentType  string                 `json:"employment_type"`
	RejectionReason *string                `json:"rejection_reason,omitempty"`
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// CandidateListRequest filtros del listado de candidatos.
type CandidateListRequest struct {
	Status     string `query:"status" validate:"omitempty,oneof=pending in_progress completed rejected"`
	Stage      string `query:"stage" validate:"omitempty,oneof=application interview background_check documentation training completed"`
	Department string `query:"department"`
	PageRequest
}

// CandidateListResponse página de candidatos.
type CandidateListResponse struct {
	Items []CandidateResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// AdvanceStageRequest mueve al candidato de etapa; Force habilita retrocesos y saltos.
type AdvanceStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=application interview background_check documentation training completed"`
	Force bool   `json:"force"`
}

// StageResponse candidato tras el movimiento y la transición aplicada.
type StageResponse struct {
	Candidate CandidateResponse `json:"candidate"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Forced    bool              `json:"forced"`
}

// RejectCandidateRequest motivo del rechazo.
type RejectCandidateRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// AttachDocumentRequest referencia devuelta por el almacenamiento de archivos.
type AttachDocumentRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Reference string `json:"reference" validate:"required,max=500"`
	Status    string `json:"status" validate:"omitempty,oneof=pending received verified rejected"`
}

// CreateSessionRequest plantilla a instanciar para el candidato.
type CreateSessionRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
}
