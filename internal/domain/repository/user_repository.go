package repository

import (
	"context"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User. Es además el
// proveedor de identidad: de aquí sale el rol de cada actor.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID y FindByEmail devuelven nil, nil si el usuario no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
