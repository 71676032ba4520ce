package entity

import "time"

// Acciones auditadas por el propio servicio.
const (
	AuditActionStepStatusChanged = "onboarding.step_status_changed"
	AuditActionSessionCreated    = "onboarding.session_created"
	AuditActionTemplateSaved     = "onboarding.template_saved"
	AuditActionTemplateCloned    = "onboarding.template_cloned"
	AuditActionStepRemoved       = "onboarding.step_removed"
	AuditActionStepAdded         = "onboarding.step_added"
	AuditActionStepUpdated       = "onboarding.step_updated"
	AuditActionStageAdvanced     = "candidate.stage_advanced"
	AuditActionStageForced       = "candidate.stage_forced"
	AuditActionCandidateRejected = "candidate.rejected"
	AuditActionRetentionPurge    = "audit.retention_purge"
)

// AuditLogEntry registro inmutable de una acción sensible.
type AuditLogEntry struct {
	ID           string
	VenueID      string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
	Timestamp    time.Time
	IPAddress    string
	UserAgent    string
}
