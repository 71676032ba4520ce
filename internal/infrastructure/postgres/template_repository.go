package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

const templateColumns = `id, venue_id, name, department, position, description, estimated_days,
	required_documents, assignees, tags, is_default, use_count, created_at, updated_at`

const stepColumns = `template_id, id, title, type, category, estimated_hours, description, instructions,
	required, assigned_to, depends_on, due_date, status, completion_criteria, documents, notes`

// TemplateRepo persiste plantillas en onboarding_templates y sus pasos en
// onboarding_template_steps (orden por sort_order).
type TemplateRepo struct {
	db Queryer
}

// NewTemplateRepository construye el repositorio sobre un pool o una tx.
func NewTemplateRepository(db Queryer) *TemplateRepo {
	return &TemplateRepo{db: db}
}

// Create inserta la cabecera y los pasos. Llamar dentro de una tx.
func (r *TemplateRepo) Create(ctx context.Context, t *entity.OnboardingTemplate) error {
	query := `
		INSERT INTO onboarding_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.VenueID, t.Name, t.Department, t.Position, t.Description, t.EstimatedDays,
		stringsOrEmpty(t.RequiredDocuments), stringsOrEmpty(t.Assignees), stringsOrEmpty(t.Tags),
		t.IsDefault, t.UseCount, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return storageErr("template.insert", err)
	}
	for i, s := range t.Steps {
		if err := r.insertStep(ctx, t.ID, s, i); err != nil {
			return err
		}
	}
	return nil
}

// Update reescribe la cabecera y reemplaza la lista completa de pasos.
func (r *TemplateRepo) Update(ctx context.Context, t *entity.OnboardingTemplate) error {
	query := `
		UPDATE onboarding_templates
		SET name = $2, department = $3, position = $4, description = $5, estimated_days = $6,
			required_documents = $7, assignees = $8, tags = $9, is_default = $10, use_count = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		t.ID, t.Name, t.Department, t.Position, t.Description, t.EstimatedDays,
		stringsOrEmpty(t.RequiredDocuments), stringsOrEmpty(t.Assignees), stringsOrEmpty(t.Tags),
		t.IsDefault, t.UseCount, t.UpdatedAt,
	)
	if err != nil {
		return storageErr("template.update", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("plantilla", t.ID)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM onboarding_template_steps WHERE template_id = $1`, t.ID); err != nil {
		return storageErr("template.replace_steps", err)
	}
	for i, s := range t.Steps {
		if err := r.insertStep(ctx, t.ID, s, i); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve la plantilla con sus pasos. nil, nil si no existe.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.OnboardingTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM onboarding_templates WHERE id = $1`
	t, err := scanTemplate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("template.get", err)
	}
	steps, err := r.stepsFor(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Steps = steps[t.ID]
	return t, nil
}

// List filtra por venue y departamento. Devuelve la página y el total.
func (r *TemplateRepo) List(ctx context.Context, f repository.TemplateFilter) ([]*entity.OnboardingTemplate, int, error) {
	where := []string{"venue_id = $1"}
	args := []any{f.VenueID}
	if f.Department != "" {
		args = append(args, f.Department)
		where = append(where, "department = $2")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM onboarding_templates WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, storageErr("template.count", err)
	}

	query := `SELECT ` + templateColumns + ` FROM onboarding_templates WHERE ` + cond +
		` ORDER BY is_default DESC, name ASC` + limitOffset(len(args))
	rows, err := r.db.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, storageErr("template.list", err)
	}
	defer rows.Close()

	var list []*entity.OnboardingTemplate
	var ids []string
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, storageErr("template.list", err)
		}
		list = append(list, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("template.list", err)
	}
	if len(ids) == 0 {
		return list, total, nil
	}

	steps, err := r.stepsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, t := range list {
		t.Steps = steps[t.ID]
	}
	return list, total, nil
}

// IncrementUseCount suma uno al contador de sesiones creadas desde la plantilla.
func (r *TemplateRepo) IncrementUseCount(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE onboarding_templates SET use_count = use_count + 1 WHERE id = $1`, id)
	if err != nil {
		return storageErr("template.increment_use_count", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("plantilla", id)
	}
	return nil
}

// AddStep inserta un paso en la posición dada.
func (r *TemplateRepo) AddStep(ctx context.Context, templateID string, step entity.OnboardingStep, position int) error {
	if err := r.insertStep(ctx, templateID, step, position); err != nil {
		return err
	}
	return r.touch(ctx, templateID)
}

// UpdateStep reescribe los campos editables de un paso existente.
func (r *TemplateRepo) UpdateStep(ctx context.Context, templateID string, s entity.OnboardingStep) error {
	query := `
		UPDATE onboarding_template_steps
		SET title = $3, category = $4, estimated_hours = $5, description = $6, instructions = $7,
			required = $8, assigned_to = $9, depends_on = $10, due_date = $11,
			completion_criteria = $12, documents = $13, notes = $14
		WHERE template_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query,
		templateID, s.ID, s.Title, string(s.Category), s.EstimatedHours, s.Description, s.Instructions,
		s.Required, nullableString(s.AssignedTo), stringsOrEmpty(s.DependsOn), nullableTime(s.DueDate),
		stringsOrEmpty(s.CompletionCriteria), stringsOrEmpty(s.Documents), nullableString(s.Notes),
	)
	if err != nil {
		return storageErr("template.update_step", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("paso", s.ID)
	}
	return r.touch(ctx, templateID)
}

// UpdateStepDependencies persiste solo el depends_on de los pasos dados.
func (r *TemplateRepo) UpdateStepDependencies(ctx context.Context, templateID string, steps []entity.OnboardingStep) error {
	for _, s := range steps {
		_, err := r.db.Exec(ctx,
			`UPDATE onboarding_template_steps SET depends_on = $3 WHERE template_id = $1 AND id = $2`,
			templateID, s.ID, stringsOrEmpty(s.DependsOn))
		if err != nil {
			return storageErr("template.update_step_dependencies", err)
		}
	}
	return nil
}

// DeleteStep borra el paso de la plantilla.
func (r *TemplateRepo) DeleteStep(ctx context.Context, templateID, stepID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM onboarding_template_steps WHERE template_id = $1 AND id = $2`, templateID, stepID)
	if err != nil {
		return storageErr("template.delete_step", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("paso", stepID)
	}
	return r.touch(ctx, templateID)
}

func (r *TemplateRepo) touch(ctx context.Context, templateID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE onboarding_templates SET updated_at = $2 WHERE id = $1`, templateID, time.Now().UTC())
	if err != nil {
		return storageErr("template.touch", err)
	}
	return nil
}

func (r *TemplateRepo) insertStep(ctx context.Context, templateID string, s entity.OnboardingStep, position int) error {
	query := `
		INSERT INTO onboarding_template_steps (` + stepColumns + `, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		templateID, s.ID, s.Title, string(s.Type), string(s.Category), s.EstimatedHours, s.Description,
		s.Instructions, s.Required, nullableString(s.AssignedTo), stringsOrEmpty(s.DependsOn),
		nullableTime(s.DueDate), string(s.Status), stringsOrEmpty(s.CompletionCriteria),
		stringsOrEmpty(s.Documents), nullableString(s.Notes), position,
	)
	if err != nil {
		return storageErr("template.insert_step", err)
	}
	return nil
}

// stepsFor carga los pasos de varias plantillas en una sola consulta, agrupados por template_id.
func (r *TemplateRepo) stepsFor(ctx context.Context, templateIDs []string) (map[string][]entity.OnboardingStep, error) {
	query := `SELECT ` + stepColumns + ` FROM onboarding_template_steps
		WHERE template_id = ANY($1) ORDER BY template_id, sort_order`
	rows, err := r.db.Query(ctx, query, templateIDs)
	if err != nil {
		return nil, storageErr("template.steps", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.OnboardingStep, len(templateIDs))
	for rows.Next() {
		var (
			templateID, stepType, category, status string
			s                                      entity.OnboardingStep
			hours                                  decimal.Decimal
		)
		if err := rows.Scan(
			&templateID, &s.ID, &s.Title, &stepType, &category, &hours, &s.Description, &s.Instructions,
			&s.Required, &s.AssignedTo, &s.DependsOn, &s.DueDate, &status, &s.CompletionCriteria,
			&s.Documents, &s.Notes,
		); err != nil {
			return nil, storageErr("template.steps", err)
		}
		s.Type = entity.StepType(stepType)
		s.Category = entity.StepCategory(category)
		s.Status = entity.StepStatus(status)
		s.EstimatedHours = hours
		if s.DependsOn == nil {
			s.DependsOn = []string{}
		}
		out[templateID] = append(out[templateID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("template.steps", err)
	}
	return out, nil
}

func scanTemplate(row pgx.Row) (*entity.OnboardingTemplate, error) {
	var t entity.OnboardingTemplate
	err := row.Scan(
		&t.ID, &t.VenueID, &t.Name, &t.Department, &t.Position, &t.Description, &t.EstimatedDays,
		&t.RequiredDocuments, &t.Assignees, &t.Tags, &t.IsDefault, &t.UseCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
