package entity

import "time"

// BackgroundCheckStatus estado de la verificación de antecedentes.
type BackgroundCheckStatus string

const (
	BackgroundCheckCleared BackgroundCheckStatus = "cleared"
	BackgroundCheckPending BackgroundCheckStatus = "pending"
	BackgroundCheckFailed  BackgroundCheckStatus = "failed"
	BackgroundCheckMissing BackgroundCheckStatus = "missing"
)

// Certification certificación con vencimiento de un miembro del staff.
type Certification struct {
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StaffMember empleado activo o histórico de una sede; población de los chequeos de cumplimiento.
type StaffMember struct {
	ID                    string
	VenueID               string
	Name                  string
	Email                 string
	Role                  string
	BackgroundCheckStatus BackgroundCheckStatus
	Certifications        []Certification
	TrainingCompleted     bool
	HiredAt               time.Time
	Active                bool
}

// StaffCounts conteos agregados para reportes.
type StaffCounts struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	ByRole map[string]int `json:"by_role"`
}
