package repository

import (
	"context"
	"time"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// AuditFilter filtros de consulta del log de auditoría. Vacío/nil = sin filtro.
type AuditFilter struct {
	VenueID      string
	UserID       string
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// AuditLogRepository define el puerto del log de auditoría (append-only).
type AuditLogRepository interface {
	Insert(ctx context.Context, e *entity.AuditLogEntry) error
	// Query devuelve la página pedida, más recientes primero, y el total sin paginar.
	Query(ctx context.Context, f AuditFilter) ([]entity.AuditLogEntry, int, error)
	Recent(ctx context.Context, venueID string, limit int) ([]entity.AuditLogEntry, error)
	CountOlderThan(ctx context.Context, venueID string, cutoff time.Time) (int, error)
	// PurgeOlderThan es la única vía de borrado (política de retención).
	PurgeOlderThan(ctx context.Context, venueID string, cutoff time.Time) (int64, error)
}
