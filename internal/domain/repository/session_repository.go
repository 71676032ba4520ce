package repository

import (
	"context"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para OnboardingSession.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.OnboardingSession) error
	// GetByID devuelve nil, nil si la sesión no existe.
	GetByID(ctx context.Context, id string) (*entity.OnboardingSession, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*entity.OnboardingSession, error)
	// Update hace compare-and-swap sobre s.Version: si otra escritura ganó devuelve
	// domain.ErrConflict. En éxito incrementa s.Version.
	Update(ctx context.Context, s *entity.OnboardingSession) error
}
