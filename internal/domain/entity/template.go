package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnboardingTemplate plantilla con nombre, acotada a departamento/cargo, con la
// lista ordenada de pasos que se clona al crear una sesión.
type OnboardingTemplate struct {
	ID                string
	VenueID           string
	Name              string
	Department        string
	Position          string
	Description       string
	EstimatedDays     int
	Steps             []OnboardingStep
	RequiredDocuments []string
	Assignees         []string
	Tags              []string
	IsDefault         bool
	UseCount          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Step devuelve el paso con el id indicado y su posición.
func (t *OnboardingTemplate) Step(id string) (*OnboardingStep, int) {
	for i := range t.Steps {
		if t.Steps[i].ID == id {
			return &t.Steps[i], i
		}
	}
	return nil, -1
}

// TotalHours suma las horas estimadas de todos los pasos.
func (t *OnboardingTemplate) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, s := range t.Steps {
		total = total.Add(s.EstimatedHours)
	}
	return total
}
