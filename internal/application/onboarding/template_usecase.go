// Package onboarding contiene los casos de uso del pipeline de onboarding:
// catálogo, plantillas, candidatos y sesiones.
package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	domainob "github.com/jhoicas/venue-api/internal/domain/onboarding"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

// Sub-pasos de las escrituras sobre pasos, reportados en StorageError.Op.
const (
	OpCleanupDependencies = "template.cleanup_dependencies"
	OpDeleteStep          = "template.delete_step"
	OpAddStep             = "template.add_step"
	OpUpdateStep          = "template.update_step"
	OpAuditInsert         = "audit.insert"
)

// TemplateUseCase administra el catálogo y las plantillas de onboarding.
type TemplateUseCase struct {
	repo    repository.TemplateRepository
	tx      repository.TxRunner
	catalog *domainob.Catalog
	now     func() time.Time
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository, tx repository.TxRunner, catalog *domainob.Catalog) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, tx: tx, catalog: catalog, now: time.Now}
}

// ListCatalog devuelve el catálogo de pasos en su orden de declaración.
func (uc *TemplateUseCase) ListCatalog() []dto.StepTemplateDTO {
	list := uc.catalog.ListAvailable()
	out := make([]dto.StepTemplateDTO, 0, len(list))
	for _, st := range list {
		out = append(out, toStepTemplateDTO(st))
	}
	return out
}

// GetCatalogEntry devuelve una entrada del catálogo.
func (uc *TemplateUseCase) GetCatalogEntry(id string) (*dto.StepTemplateDTO, error) {
	st, ok := uc.catalog.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("paso de catálogo", id)
	}
	out := toStepTemplateDTO(st)
	return &out, nil
}

// Save crea la plantilla (ID vacío) o sobrescribe la existente. Valida campos
// obligatorios y el grafo de dependencias antes de escribir.
func (uc *TemplateUseCase) Save(ctx context.Context, actor dto.Actor, in dto.SaveTemplateRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()

	var existing *entity.OnboardingTemplate
	if in.ID != "" {
		var err error
		existing, err = uc.load(ctx, actor, in.ID)
		if err != nil {
			return nil, err
		}
	}

	t := &entity.OnboardingTemplate{
		ID:                in.ID,
		VenueID:           actor.VenueID,
		Name:              in.Name,
		Department:        in.Department,
		Position:          in.Position,
		Description:       in.Description,
		EstimatedDays:     in.EstimatedDays,
		RequiredDocuments: append([]string{}, in.RequiredDocuments...),
		Assignees:         append([]string{}, in.Assignees...),
		Tags:              append([]string{}, in.Tags...),
		IsDefault:         in.IsDefault,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	t.Steps = make([]entity.OnboardingStep, 0, len(in.Steps))
	for _, s := range in.Steps {
		t.Steps = append(t.Steps, fromStepDTO(s))
	}
	if existing != nil {
		t.CreatedAt = existing.CreatedAt
		t.UseCount = existing.UseCount
	} else {
		t.ID = domainob.NewID()
	}

	domainob.Normalize(t)
	if err := domainob.Validate(t); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if existing == nil {
			if err := repos.Templates.Create(ctx, t); err != nil {
				return domain.AtStep("template.create", err)
			}
		} else if err := repos.Templates.Update(ctx, t); err != nil {
			return domain.AtStep("template.update", err)
		}
		entry := auditEntry(actor, entity.AuditActionTemplateSaved, "onboarding_template", t.ID,
			map[string]any{"name": t.Name, "steps": len(t.Steps), "created": existing == nil}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("guardar plantilla: %w", err)
	}
	return toTemplateResponse(t), nil
}

// Get devuelve la plantilla de la sede del actor.
func (uc *TemplateUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.TemplateResponse, error) {
	t, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(t), nil
}

// List lista las plantillas de la sede, opcionalmente por departamento.
func (uc *TemplateUseCase) List(ctx context.Context, actor dto.Actor, in dto.TemplateListRequest) (*dto.TemplateListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.TemplateFilter{
		VenueID:    actor.VenueID,
		Department: in.Department,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar plantillas: %w", err)
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return &dto.TemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Clone persiste una copia profunda con ids nuevos.
func (uc *TemplateUseCase) Clone(ctx context.Context, actor dto.Actor, id string) (*dto.TemplateResponse, error) {
	src, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	clone := domainob.Clone(src, now)
	clone.Name = src.Name + " (copy)"

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Templates.Create(ctx, clone); err != nil {
			return domain.AtStep("template.create", err)
		}
		entry := auditEntry(actor, entity.AuditActionTemplateCloned, "onboarding_template", clone.ID,
			map[string]any{"source_id": src.ID}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("clonar plantilla: %w", err)
	}
	return toTemplateResponse(clone), nil
}

// AddStep agrega al final de la plantilla un paso derivado del catálogo.
func (uc *TemplateUseCase) AddStep(ctx context.Context, actor dto.Actor, templateID string, in dto.AddStepRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	st, ok := uc.catalog.Get(in.StepTemplateID)
	if !ok {
		return nil, domain.NewNotFoundError("paso de catálogo", in.StepTemplateID)
	}
	t, err := uc.load(ctx, actor, templateID)
	if err != nil {
		return nil, err
	}
	step := domainob.AddStep(t, st)
	now := uc.now()

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Templates.AddStep(ctx, t.ID, step, len(t.Steps)-1); err != nil {
			return domain.AtStep(OpAddStep, err)
		}
		entry := auditEntry(actor, entity.AuditActionStepAdded, "onboarding_template", t.ID,
			map[string]any{"step_id": step.ID, "step_template_id": st.ID}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("agregar paso: %w", err)
	}
	t.UpdatedAt = now
	return toTemplateResponse(t), nil
}

// UpdateStep edita un paso. Un cambio de dependsOn se vuelve a validar contra el grafo.
func (uc *TemplateUseCase) UpdateStep(ctx context.Context, actor dto.Actor, templateID, stepID string, in dto.UpdateStepRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t, err := uc.load(ctx, actor, templateID)
	if err != nil {
		return nil, err
	}
	patch := domainob.StepPatch{
		Title:              in.Title,
		Description:        in.Description,
		EstimatedHours:     in.EstimatedHours,
		Instructions:       in.Instructions,
		AssignedTo:         in.AssignedTo,
		Required:           in.Required,
		DependsOn:          in.DependsOn,
		CompletionCriteria: in.CompletionCriteria,
		Documents:          in.Documents,
		DueDate:            in.DueDate,
		Notes:              in.Notes,
	}
	if in.Category != nil {
		c := entity.StepCategory(*in.Category)
		patch.Category = &c
	}
	step, err := domainob.UpdateStep(t, stepID, patch)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Templates.UpdateStep(ctx, t.ID, step); err != nil {
			return domain.AtStep(OpUpdateStep, err)
		}
		entry := auditEntry(actor, entity.AuditActionStepUpdated, "onboarding_template", t.ID,
			map[string]any{"step_id": step.ID}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar paso: %w", err)
	}
	t.UpdatedAt = now
	return toTemplateResponse(t), nil
}

// RemoveStep quita el paso y limpia las dependencias colgantes. La limpieza se
// persiste antes del borrado, ambos en la misma transacción; un fallo indica en
// Op cuál de los dos sub-pasos no se completó.
func (uc *TemplateUseCase) RemoveStep(ctx context.Context, actor dto.Actor, templateID, stepID string) (*dto.RemoveStepResponse, error) {
	t, err := uc.load(ctx, actor, templateID)
	if err != nil {
		return nil, err
	}
	affected, err := domainob.RemoveStep(t, stepID)
	if err != nil {
		return nil, err
	}
	changed := make([]entity.OnboardingStep, 0, len(affected))
	for _, id := range affected {
		if s, _ := t.Step(id); s != nil {
			changed = append(changed, *s)
		}
	}
	now := uc.now()

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if len(changed) > 0 {
			if err := repos.Templates.UpdateStepDependencies(ctx, t.ID, changed); err != nil {
				return domain.AtStep(OpCleanupDependencies, err)
			}
		}
		if err := repos.Templates.DeleteStep(ctx, t.ID, stepID); err != nil {
			return domain.AtStep(OpDeleteStep, err)
		}
		entry := auditEntry(actor, entity.AuditActionStepRemoved, "onboarding_template", t.ID,
			map[string]any{"step_id": stepID, "affected_steps": affected}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("quitar paso: %w", err)
	}
	return &dto.RemoveStepResponse{TemplateID: t.ID, RemovedStepID: stepID, AffectedSteps: nonNil(affected)}, nil
}

// load trae la plantilla y la oculta si pertenece a otra sede.
func (uc *TemplateUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.OnboardingTemplate, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener plantilla: %w", err)
	}
	if t == nil || t.VenueID != actor.VenueID {
		return nil, domain.NewNotFoundError("plantilla", id)
	}
	return t, nil
}
