package entity

// Severity severidad de un chequeo de cumplimiento. SeverityError marca un
// chequeo que no pudo reunir sus datos.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityError  Severity = "error"
)

// CheckType identifica cada chequeo de la batería fija.
type CheckType string

const (
	CheckMissingBackgroundChecks CheckType = "missing_background_checks"
	CheckExpiredCertifications   CheckType = "expired_certifications"
	CheckIncompleteTraining      CheckType = "incomplete_training"
	CheckRetentionPolicy         CheckType = "retention_policy"
)

// ComplianceCheck resultado puntual de un chequeo (no se persiste).
type ComplianceCheck struct {
	Type        CheckType `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
	Items       []string  `json:"items"`
	Error       string    `json:"error,omitempty"`
}
