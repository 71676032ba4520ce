package dto

import (
	"time"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// PermissionResponse resultado de checkPermission.
type PermissionResponse struct {
	UserID      string   `json:"user_id"`
	Action      string   `json:"action,omitempty"`
	Allowed     bool     `json:"allowed"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// ComplianceRunResponse resultado agregado de la batería de chequeos.
type ComplianceRunResponse struct {
	TotalChecks    int                      `json:"total_checks"`
	HighSeverity   int                      `json:"high_severity"`
	MediumSeverity int                      `json:"medium_severity"`
	LowSeverity    int                      `json:"low_severity"`
	FailedChecks   int                      `json:"failed_checks"`
	Checks         []entity.ComplianceCheck `json:"checks"`
}

// ScoreResponse puntaje de cumplimiento con los chequeos que lo originan.
type ScoreResponse struct {
	Score  int                      `json:"score"`
	Checks []entity.ComplianceCheck `json:"checks"`
}

// ComplianceReport reporte compuesto: chequeos, puntaje, conteos de staff,
// recomendaciones y (salvo summary) las entradas recientes de auditoría.
type ComplianceReport struct {
	VenueID         string                `json:"venue_id"`
	Type            string                `json:"type"`
	GeneratedAt     time.Time             `json:"generated_at"`
	Score           int                   `json:"score"`
	Summary         ComplianceRunResponse `json:"summary"`
	Staff           entity.StaffCounts    `json:"staff"`
	Recommendations []string              `json:"recommendations"`
	RecentAudit     []AuditEntryDTO       `json:"recent_audit,omitempty"`
}
