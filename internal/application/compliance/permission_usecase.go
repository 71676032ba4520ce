package compliance

import (
	"context"
	"fmt"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

// PermissionUseCase resuelve permisos a partir del rol almacenado del usuario.
type PermissionUseCase struct {
	users  repository.UserRepository
	matrix PermissionMatrix
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(users repository.UserRepository, matrix PermissionMatrix) *PermissionUseCase {
	return &PermissionUseCase{users: users, matrix: matrix}
}

// CheckPermission busca el rol del usuario y lo pasa por la matriz. Un usuario
// inexistente, de otra sede o con rol desconocido resuelve a un conjunto vacío
// (allowed=false) sin error.
func (uc *PermissionUseCase) CheckPermission(ctx context.Context, userID, venueID, action string) (*dto.PermissionResponse, error) {
	out := &dto.PermissionResponse{UserID: userID, Action: action, Permissions: []string{}}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver rol: %w", err)
	}
	if user == nil || user.VenueID != venueID {
		return out, nil
	}
	out.Role = user.Role
	out.Permissions = uc.matrix.Permissions(user.Role)
	if action != "" {
		out.Allowed = contains(out.Permissions, action)
	}
	return out, nil
}

// Authorize devuelve PermissionDeniedError si el actor no tiene la acción.
func (uc *PermissionUseCase) Authorize(ctx context.Context, actor dto.Actor, action string) error {
	res, err := uc.CheckPermission(ctx, actor.UserID, actor.VenueID, action)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return &domain.PermissionDeniedError{UserID: actor.UserID, Role: res.Role, Action: action}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
