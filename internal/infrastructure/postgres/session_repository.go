package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

const sessionColumns = `id, venue_id, candidate_id, template_id, template_name, status, steps,
	started_at, completed_at, version, updated_at`

// stepRecord forma JSONB de un paso dentro de onboarding_sessions.steps.
type stepRecord struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	EstimatedHours     decimal.Decimal `json:"estimated_hours"`
	Description        string          `json:"description,omitempty"`
	Instructions       string          `json:"instructions,omitempty"`
	Required           bool            `json:"required"`
	AssignedTo         *string         `json:"assigned_to,omitempty"`
	DependsOn          []string        `json:"depends_on"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	Status             string          `json:"status"`
	CompletionCriteria []string        `json:"completion_criteria,omitempty"`
	Documents          []string        `json:"documents,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
}

func toStepRecords(steps []entity.OnboardingStep) []stepRecord {
	out := make([]stepRecord, 0, len(steps))
	for _, s := range steps {
		out = append(out, stepRecord{
			ID: s.ID, Title: s.Title, Type: string(s.Type), Category: string(s.Category),
			EstimatedHours: s.EstimatedHours, Description: s.Description, Instructions: s.Instructions,
			Required: s.Required, AssignedTo: s.AssignedTo, DependsOn: stringsOrEmpty(s.DependsOn),
			DueDate: s.DueDate, Status: string(s.Status), CompletionCriteria: s.CompletionCriteria,
			Documents: s.Documents, Notes: s.Notes,
		})
	}
	return out
}

func fromStepRecords(recs []stepRecord) []entity.OnboardingStep {
	out := make([]entity.OnboardingStep, 0, len(recs))
	for _, r := range recs {
		out = append(out, entity.OnboardingStep{
			ID: r.ID, Title: r.Title, Type: entity.StepType(r.Type), Category: entity.StepCategory(r.Category),
			EstimatedHours: r.EstimatedHours, Description: r.Description, Instructions: r.Instructions,
			Required: r.Required, AssignedTo: r.AssignedTo, DependsOn: stringsOrEmpty(r.DependsOn),
			DueDate: r.DueDate, Status: entity.StepStatus(r.Status), CompletionCriteria: r.CompletionCriteria,
			Documents: r.Documents, Notes: r.Notes,
		})
	}
	return out
}

// SessionRepo persiste sesiones de onboarding. Los pasos son una copia de la
// plantilla y viajan como JSONB.
type SessionRepo struct {
	db Queryer
}

// NewSessionRepository construye el repositorio sobre un pool o una tx.
func NewSessionRepository(db Queryer) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserta la sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.OnboardingSession) error {
	steps, err := jsonb(toStepRecords(s.Steps))
	if err != nil {
		return storageErr("session.insert", err)
	}
	query := `
		INSERT INTO onboarding_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.Exec(ctx, query,
		s.ID, s.VenueID, s.CandidateID, s.TemplateID, s.TemplateName, string(s.Status), steps,
		s.StartedAt, nullableTime(s.CompletedAt), s.Version, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return storageErr("session.insert", err)
	}
	return nil
}

// GetByID nil, nil si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.OnboardingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM onboarding_sessions WHERE id = $1`
	s, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("session.get", err)
	}
	return s, nil
}

// ListByCandidate sesiones del candidato, la más reciente primero.
func (r *SessionRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*entity.OnboardingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM onboarding_sessions
		WHERE candidate_id = $1 ORDER BY started_at DESC`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, storageErr("session.list", err)
	}
	defer rows.Close()
	var list []*entity.OnboardingSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, storageErr("session.list", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("session.list", err)
	}
	return list, nil
}

// Update guarda estado y pasos si la versión no cambió desde la lectura.
// Si otro escritor ganó devuelve domain.ErrConflict; si no, incrementa s.Version.
func (r *SessionRepo) Update(ctx context.Context, s *entity.OnboardingSession) error {
	steps, err := jsonb(toStepRecords(s.Steps))
	if err != nil {
		return storageErr("session.update", err)
	}
	query := `
		UPDATE onboarding_sessions
		SET status = $2, steps = $3, completed_at = $4, updated_at = $5, version = version + 1
		WHERE id = $1 AND version = $6`
	tag, err := r.db.Exec(ctx, query,
		s.ID, string(s.Status), steps, nullableTime(s.CompletedAt), s.UpdatedAt, s.Version,
	)
	if err != nil {
		return storageErr("session.update", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	s.Version++
	return nil
}

func scanSession(row pgx.Row) (*entity.OnboardingSession, error) {
	var (
		s      entity.OnboardingSession
		status string
		raw    []byte
	)
	err := row.Scan(
		&s.ID, &s.VenueID, &s.CandidateID, &s.TemplateID, &s.TemplateName, &status, &raw,
		&s.StartedAt, &s.CompletedAt, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	var recs []stepRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, err
		}
	}
	s.Status = entity.SessionStatus(status)
	s.Steps = fromStepRecords(recs)
	return &s, nil
}
