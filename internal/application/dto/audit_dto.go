package dto

import "time"

// RecordAuditRequest entrada manual al log de auditoría (acciones de la UI).
type RecordAuditRequest struct {
	Action       string         `json:"action" validate:"required,max=120"`
	ResourceType string         `json:"resource_type" validate:"required,max=80"`
	ResourceID   string         `json:"resource_id" validate:"omitempty,max=120"`
	Details      map[string]any `json:"details"`
}

// AuditEntryDTO entrada del log de auditoría.
type AuditEntryDTO struct {
	ID           string         `json:"id"`
	VenueID      string         `json:"venue_id"`
	UserID       string         `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Details      map[string]any `json:"details"`
	Timestamp    time.Time      `json:"timestamp"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
}

// AuditQueryRequest filtros de consulta. From/To en RFC3339.
type AuditQueryRequest struct {
	UserID       string `query:"user_id"`
	Action       string `query:"action"`
	ResourceType string `query:"resource_type"`
	From         string `query:"from"`
	To           string `query:"to"`
	PageRequest
}

// AuditQueryResponse página de entradas y total sin paginar.
type AuditQueryResponse struct {
	Entries    []AuditEntryDTO `json:"entries"`
	TotalCount int             `json:"total_count"`
	Page       PageResponse    `json:"page"`
}

// PurgeResponse resultado de la purga por retención.
type PurgeResponse struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}
