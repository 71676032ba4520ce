package repository

import (
	"context"
	"time"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

// ExpiredCertification certificación vencida de un miembro activo del staff.
type ExpiredCertification struct {
	StaffID       string
	StaffName     string
	Certification string
	ExpiredAt     time.Time
}

// StaffRepository consultas read-only sobre el staff de una sede, usadas por
// los chequeos de cumplimiento y los reportes.
type StaffRepository interface {
	// ListMissingBackgroundChecks staff activo cuyo background check no está cleared.
	ListMissingBackgroundChecks(ctx context.Context, venueID string) ([]entity.StaffMember, error)
	ListExpiredCertifications(ctx context.Context, venueID string, now time.Time) ([]ExpiredCertification, error)
	ListIncompleteTraining(ctx context.Context, venueID string) ([]entity.StaffMember, error)
	Counts(ctx context.Context, venueID string) (entity.StaffCounts, error)
}
