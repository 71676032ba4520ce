package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var _ repository.CandidateRepository = (*CandidateRepo)(nil)

const candidateColumns = `id, venue_id, name, email, phone, position, department, status, stage,
	application_date, skills, documents, assigned_manager, start_date, employment_type,
	rejection_reason, version, created_at, updated_at`

// CandidateRepo persiste candidatos; documents es JSONB y skills text[].
type CandidateRepo struct {
	db Queryer
}

// NewCandidateRepository construye el repositorio sobre un pool o una tx.
func NewCandidateRepository(db Queryer) *CandidateRepo {
	return &CandidateRepo{db: db}
}

// Create inserta el candidato.
func (r *CandidateRepo) Create(ctx context.Context, c *entity.Candidate) error {
	docs, err := jsonb(documentsOrEmpty(c.Documents))
	if err != nil {
		return storageErr("candidate.insert", err)
	}
	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.db.Exec(ctx, query,
		c.ID, c.VenueID, c.Name, c.Email, c.Phone, c.Position, c.Department, string(c.Status), string(c.Stage),
		c.ApplicationDate, stringsOrEmpty(c.Skills), docs, nullableString(c.AssignedManager),
		nullableTime(c.StartDate), string(c.EmploymentType), nullableString(c.RejectionReason),
		c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return storageErr("candidate.insert", err)
	}
	return nil
}

// GetByID nil, nil si no existe.
func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("candidate.get", err)
	}
	return c, nil
}

// List filtra por venue, estado, etapa y departamento. Devuelve la página y el total.
func (r *CandidateRepo) List(ctx context.Context, f repository.CandidateFilter) ([]*entity.Candidate, int, error) {
	where := []string{"venue_id = $1"}
	args := []any{f.VenueID}
	add := func(col string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}
	if f.Stage != "" {
		add("stage", string(f.Stage))
	}
	if f.Department != "" {
		add("department", f.Department)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, storageErr("candidate.count", err)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE ` + cond +
		` ORDER BY application_date DESC` + limitOffset(len(args))
	rows, err := r.db.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, storageErr("candidate.list", err)
	}
	defer rows.Close()
	var list []*entity.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, storageErr("candidate.list", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("candidate.list", err)
	}
	return list, total, nil
}

// Update compare-and-swap sobre version. domain.ErrConflict si otro escritor ganó.
func (r *CandidateRepo) Update(ctx context.Context, c *entity.Candidate) error {
	docs, err := jsonb(documentsOrEmpty(c.Documents))
	if err != nil {
		return storageErr("candidate.update", err)
	}
	query := `
		UPDATE candidates
		SET name = $2, email = $3, phone = $4, position = $5, department = $6, status = $7, stage = $8,
			skills = $9, documents = $10, assigned_manager = $11, start_date = $12, employment_type = $13,
			rejection_reason = $14, updated_at = $15, version = version + 1
		WHERE id = $1 AND version = $16`
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Position, c.Department, string(c.Status), string(c.Stage),
		stringsOrEmpty(c.Skills), docs, nullableString(c.AssignedManager), nullableTime(c.StartDate),
		string(c.EmploymentType), nullableString(c.RejectionReason), c.UpdatedAt, c.Version,
	)
	if err != nil {
		return storageErr("candidate.update", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	c.Version++
	return nil
}

func documentsOrEmpty(in []entity.CandidateDocument) []entity.CandidateDocument {
	if in == nil {
		return []entity.CandidateDocument{}
	}
	return in
}

func scanCandidate(row pgx.Row) (*entity.Candidate, error) {
	var (
		c                         entity.Candidate
		status, stage, employment string
		docs                      []byte
	)
	err := row.Scan(
		&c.ID, &c.VenueID, &c.Name, &c.Email, &c.Phone, &c.Position, &c.Department, &status, &stage,
		&c.ApplicationDate, &c.Skills, &docs, &c.AssignedManager, &c.StartDate, &employment,
		&c.RejectionReason, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &c.Documents); err != nil {
			return nil, err
		}
	}
	c.Status = entity.CandidateStatus(status)
	c.Stage = entity.CandidateStage(stage)
	c.EmploymentType = entity.EmploymentType(employment)
	return &c, nil
}
