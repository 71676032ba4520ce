package repository

import (
	"context"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// CandidateFilter filtros del listado de candidatos. Vacío = sin filtro.
type CandidateFilter struct {
	VenueID    string
	Status     entity.CandidateStatus
	Stage      entity.CandidateStage
	Department string
	Limit      int
	Offset     int
}

// CandidateRepository define el puerto de persistencia para Candidate.
type CandidateRepository interface {
	Create(ctx context.Context, c *entity.Candidate) error
	// GetByID devuelve nil, nil si el candidato no existe.
	GetByID(ctx context.Context, id string) (*entity.Candidate, error)
	List(ctx context.Context, f CandidateFilter) ([]*entity.Candidate, int, error)
	// Update hace compare-and-swap sobre c.Version (ver SessionRepository.Update).
	Update(ctx context.Context, c *entity.Candidate) error
}
