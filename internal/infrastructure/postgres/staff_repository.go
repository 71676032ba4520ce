package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, venue_id, name, email, role, background_check_status, training_completed, hired_at, active`

// StaffRepo consultas de solo lectura sobre staff_members y staff_certifications
// usadas por los chequeos de cumplimiento.
type StaffRepo struct {
	db Queryer
}

// NewStaffRepository construye el repositorio.
func NewStaffRepository(db Queryer) *StaffRepo {
	return &StaffRepo{db: db}
}

// ListMissingBackgroundChecks personal activo sin verificación de antecedentes aprobada.
func (r *StaffRepo) ListMissingBackgroundChecks(ctx context.Context, venueID string) ([]entity.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members
		WHERE venue_id = $1 AND active AND background_check_status <> 'cleared'
		ORDER BY name`
	return r.listMembers(ctx, "staff.missing_background_checks", query, venueID)
}

// ListIncompleteTraining personal activo sin la capacitación obligatoria.
func (r *StaffRepo) ListIncompleteTraining(ctx context.Context, venueID string) ([]entity.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members
		WHERE venue_id = $1 AND active AND NOT training_completed
		ORDER BY name`
	return r.listMembers(ctx, "staff.incomplete_training", query, venueID)
}

// ListExpiredCertifications certificaciones vencidas a la fecha now.
func (r *StaffRepo) ListExpiredCertifications(ctx context.Context, venueID string, now time.Time) ([]repository.ExpiredCertification, error) {
	query := `
		SELECT s.id, s.name, c.name, c.expires_at
		FROM staff_certifications c
		JOIN staff_members s ON s.id = c.staff_id
		WHERE s.venue_id = $1 AND s.active AND c.expires_at < $2
		ORDER BY c.expires_at, s.name`
	rows, err := r.db.Query(ctx, query, venueID, now)
	if err != nil {
		return nil, storageErr("staff.expired_certifications", err)
	}
	defer rows.Close()
	out := []repository.ExpiredCertification{}
	for rows.Next() {
		var e repository.ExpiredCertification
		if err := rows.Scan(&e.StaffID, &e.StaffName, &e.Certification, &e.ExpiredAt); err != nil {
			return nil, storageErr("staff.expired_certifications", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("staff.expired_certifications", err)
	}
	return out, nil
}

// Counts totales por venue: total, activos y activos por rol.
func (r *StaffRepo) Counts(ctx context.Context, venueID string) (entity.StaffCounts, error) {
	query := `
		SELECT role, COUNT(*), COUNT(*) FILTER (WHERE active)
		FROM staff_members WHERE venue_id = $1
		GROUP BY role ORDER BY role`
	counts := entity.StaffCounts{ByRole: map[string]int{}}
	rows, err := r.db.Query(ctx, query, venueID)
	if err != nil {
		return counts, storageErr("staff.counts", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			role          string
			total, active int
		)
		if err := rows.Scan(&role, &total, &active); err != nil {
			return counts, storageErr("staff.counts", err)
		}
		counts.Total += total
		counts.Active += active
		counts.ByRole[role] = active
	}
	if err := rows.Err(); err != nil {
		return counts, storageErr("staff.counts", err)
	}
	return counts, nil
}

func (r *StaffRepo) listMembers(ctx context.Context, op, query string, args ...any) ([]entity.StaffMember, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	out := []entity.StaffMember{}
	for rows.Next() {
		var (
			m        entity.StaffMember
			bgStatus string
		)
		if err := rows.Scan(&m.ID, &m.VenueID, &m.Name, &m.Email, &m.Role, &bgStatus,
			&m.TrainingCompleted, &m.HiredAt, &m.Active); err != nil {
			return nil, storageErr(op, err)
		}
		m.BackgroundCheckStatus = entity.BackgroundCheckStatus(bgStatus)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}
