package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const auditColumns = `id, venue_id, user_id, action, resource_type, resource_id, details,
	occurred_at, ip_address, user_agent`

// AuditLogRepo registro append-only de audit_log.
type AuditLogRepo struct {
	db Queryer
}

// NewAuditLogRepository construye el repositorio sobre un pool o una tx.
func NewAuditLogRepository(db Queryer) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

// Insert agrega una entrada; nunca actualiza.
func (r *AuditLogRepo) Insert(ctx context.Context, e *entity.AuditLogEntry) error {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := jsonb(details)
	if err != nil {
		return storageErr("audit.insert", err)
	}
	query := `
		INSERT INTO audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.Exec(ctx, query,
		e.ID, e.VenueID, e.UserID, e.Action, e.ResourceType, e.ResourceID, raw,
		e.Timestamp, e.IPAddress, e.UserAgent,
	)
	if err != nil {
		return storageErr("audit.insert", err)
	}
	return nil
}

// Query filtra y pagina, más reciente primero. El total ignora Limit/Offset.
func (r *AuditLogRepo) Query(ctx context.Context, f repository.AuditFilter) ([]entity.AuditLogEntry, int, error) {
	where := []string{"venue_id = $1"}
	args := []any{f.VenueID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.ResourceType != "" {
		add("resource_type = $%d", f.ResourceType)
	}
	if f.From != nil {
		add("occurred_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("occurred_at <= $%d", *f.To)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, storageErr("audit.count", err)
	}

	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE ` + cond +
		` ORDER BY occurred_at DESC, id` + limitOffset(len(args))
	entries, err := r.list(ctx, "audit.query", query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Recent últimas limit entradas del venue.
func (r *AuditLogRepo) Recent(ctx context.Context, venueID string, limit int) ([]entity.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE venue_id = $1
		ORDER BY occurred_at DESC, id LIMIT $2`
	return r.list(ctx, "audit.recent", query, venueID, limit)
}

// CountOlderThan cuenta las entradas anteriores a cutoff.
func (r *AuditLogRepo) CountOlderThan(ctx context.Context, venueID string, cutoff time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_log WHERE venue_id = $1 AND occurred_at < $2`, venueID, cutoff).Scan(&n)
	if err != nil {
		return 0, storageErr("audit.count_older", err)
	}
	return n, nil
}

// PurgeOlderThan borra las entradas anteriores a cutoff y devuelve cuántas.
func (r *AuditLogRepo) PurgeOlderThan(ctx context.Context, venueID string, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM audit_log WHERE venue_id = $1 AND occurred_at < $2`, venueID, cutoff)
	if err != nil {
		return 0, storageErr("audit.purge", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AuditLogRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.AuditLogEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	entries := []entity.AuditLogEntry{}
	for rows.Next() {
		e, err := scanAudit(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return entries, nil
}

func scanAudit(row pgx.Row) (entity.AuditLogEntry, error) {
	var (
		e   entity.AuditLogEntry
		raw []byte
	)
	if err := row.Scan(
		&e.ID, &e.VenueID, &e.UserID, &e.Action, &e.ResourceType, &e.ResourceID, &raw,
		&e.Timestamp, &e.IPAddress, &e.UserAgent,
	); err != nil {
		return e, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e.Details); err != nil {
			return e, err
		}
	}
	return e, nil
}
