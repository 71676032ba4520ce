package entity

import "time"

// CandidateStatus disposición administrativa del candidato.
type CandidateStatus string

const (
	CandidateStatusPending    CandidateStatus = "pending"
	CandidateStatusInProgress CandidateStatus = "in_progress"
	CandidateStatusCompleted  CandidateStatus = "completed"
	CandidateStatusRejected   CandidateStatus = "rejected"
)

// Valid informa si el estado es conocido.
func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateStatusPending, CandidateStatusInProgress,
		CandidateStatusCompleted, CandidateStatusRejected:
		return true
	}
	return false
}

// CandidateStage posición del candidato en el pipeline (eje independiente del estado).
type CandidateStage string

const (
	StageApplication     CandidateStage = "application"
	StageInterview       CandidateStage = "interview"
	StageBackgroundCheck CandidateStage = "background_check"
	StageDocumentation   CandidateStage = "documentation"
	StageTraining        CandidateStage = "training"
	StageCompleted       CandidateStage = "completed"
)

// Valid informa si la etapa es conocida.
func (s CandidateStage) Valid() bool {
	switch s {
	case StageApplication, StageInterview, StageBackgroundCheck,
		StageDocumentation, StageTraining, StageCompleted:
		return true
	}
	return false
}

// EmploymentType modalidad de contratación.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContractor EmploymentType = "contractor"
	EmploymentVolunteer  EmploymentType = "volunteer"
)

// Valid informa si la modalidad es conocida.
func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContractor, EmploymentVolunteer:
		return true
	}
	return false
}

// CandidateDocument documento entregado por el candidato; Reference es el
// identificador devuelto por el almacenamiento de archivos.
type CandidateDocument struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
}

// Candidate persona en proceso de selección/onboarding para una sede.
type Candidate struct {
	ID              string
	VenueID         string
	Name            string
	Email           string
	Phone           string
	Position        string
	Department      string
	Status          CandidateStatus
	Stage           CandidateStage
	ApplicationDate time.Time
	Skills          []string
	Documents       []CandidateDocument
	AssignedManager *string
	StartDate       *time.Time
	EmploymentType  EmploymentType
	RejectionReason *string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
