package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	domainob "github.com/jhoicas/venue-api/internal/domain/onboarding"
)

func newTemplateUC(t *testing.T) (*TemplateUseCase, *memStore) {
	t.Helper()
	catalog, err := domainob.DefaultCatalog()
	require.NoError(t, err)
	store := newMemStore()
	uc := NewTemplateUseCase(memTemplates{store}, memTx{store}, catalog)
	uc.now = stubClock
	return uc, store
}

func stepIn(id string, hours int64, deps ...string) dto.StepDTO {
	return dto.StepDTO{
		ID: id, Title: id, Type: "task", Category: "admin",
		EstimatedHours: decimal.NewFromInt(hours), Required: true, DependsOn: deps,
	}
}

func saveRequest(steps ...dto.StepDTO) dto.SaveTemplateRequest {
	return dto.SaveTemplateRequest{Name: "Sound Engineer", Department: "Production", Position: "Sound Engineer", Steps: steps}
}

func TestTemplateSave_CreaYAudita(t *testing.T) {
	uc, store := newTemplateUC(t)

	out, err := uc.Save(context.Background(), manager, saveRequest(stepIn("A", 4), stepIn("B", 6, "A")))
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "venue-1", out.VenueID)
	assert.Equal(t, 2, out.EstimatedDays)
	assert.True(t, decimal.NewFromInt(10).Equal(out.TotalHours))
	assert.Equal(t, "pending", out.Steps[0].Status)
	assert.Equal(t, []string{entity.AuditActionTemplateSaved}, store.actions())
}

func TestTemplateSave_RechazaCiclo(t *testing.T) {
	uc, store := newTemplateUC(t)

	_, err := uc.Save(context.Background(), manager, saveRequest(stepIn("A", 1, "C"), stepIn("B", 1, "A"), stepIn("C", 1, "B")))
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"A", "C", "B", "A"}, verr.Cycle)
	assert.Empty(t, store.templates, "nada se escribe si la validación falla")
}

func TestTemplateSave_SobrescribeConservandoUseCount(t *testing.T) {
	uc, store := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)
	tpl := store.templates[created.ID]
	tpl.UseCount = 3
	store.templates[created.ID] = tpl

	in := saveRequest(stepIn("A", 1), stepIn("B", 2, "A"))
	in.ID = created.ID
	in.Name = "Senior Sound Engineer"
	out, err := uc.Save(ctx, manager, in)
	require.NoError(t, err)
	assert.Equal(t, 3, out.UseCount)
	assert.Equal(t, "Senior Sound Engineer", store.templates[created.ID].Name)
	assert.Len(t, store.templates[created.ID].Steps, 2)
}

func TestTemplateSave_OtraSedeNoEncuentra(t *testing.T) {
	uc, _ := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)

	_, err = uc.Get(ctx, outsider, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTemplateRemoveStep_LimpiaDependencias(t *testing.T) {
	uc, store := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1), stepIn("B", 1), stepIn("C", 1, "A", "B")))
	require.NoError(t, err)

	out, err := uc.RemoveStep(ctx, manager, created.ID, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, out.AffectedSteps)

	persisted := store.templates[created.ID]
	require.Len(t, persisted.Steps, 2)
	assert.Equal(t, []string{"B"}, persisted.Steps[1].DependsOn)
	assert.Contains(t, store.actions(), entity.AuditActionStepRemoved)
}

func TestTemplateRemoveStep_IdentificaSubPasoFallido(t *testing.T) {
	cases := []struct {
		name   string
		inject func(*memStore)
		op     string
	}{
		{"limpieza", func(s *memStore) { s.failCleanup = errors.New("connection reset") }, OpCleanupDependencies},
		{"borrado", func(s *memStore) { s.failDelete = errors.New("connection reset") }, OpDeleteStep},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := newTemplateUC(t)
			ctx := context.Background()
			created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1), stepIn("B", 1, "A")))
			require.NoError(t, err)
			tc.inject(store)

			_, err = uc.RemoveStep(ctx, manager, created.ID, "A")
			var serr *domain.StorageError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tc.op, serr.Op)
		})
	}
}

func TestTemplateRemoveStep_PasoInexistente(t *testing.T) {
	uc, _ := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)

	_, err = uc.RemoveStep(ctx, manager, created.ID, "Z")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTemplateAddStep_DesdeCatalogo(t *testing.T) {
	uc, store := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)

	out, err := uc.AddStep(ctx, manager, created.ID, dto.AddStepRequest{StepTemplateID: "safety-training"})
	require.NoError(t, err)
	require.Len(t, out.Steps, 2)
	assert.Equal(t, "Health & Safety Training", out.Steps[1].Title)
	assert.Len(t, store.templates[created.ID].Steps, 2)

	_, err = uc.AddStep(ctx, manager, created.ID, dto.AddStepRequest{StepTemplateID: "karaoke"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTemplateUpdateStep_DependenciaCiclicaNoPersiste(t *testing.T) {
	uc, store := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1), stepIn("B", 1, "A")))
	require.NoError(t, err)

	deps := []string{"B"}
	_, err = uc.UpdateStep(ctx, manager, created.ID, "A", dto.UpdateStepRequest{DependsOn: &deps})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, store.templates[created.ID].Steps[0].DependsOn)

	title := "Kickoff"
	out, err := uc.UpdateStep(ctx, manager, created.ID, "A", dto.UpdateStepRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", out.Steps[0].Title)
	assert.Equal(t, "Kickoff", store.templates[created.ID].Steps[0].Title)
}

func TestTemplateStepWrites_AuditanEnLaMismaTransaccion(t *testing.T) {
	uc, store := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)

	out, err := uc.AddStep(ctx, manager, created.ID, dto.AddStepRequest{StepTemplateID: "safety-training"})
	require.NoError(t, err)
	title := "Kickoff"
	_, err = uc.UpdateStep(ctx, manager, created.ID, "A", dto.UpdateStepRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, []string{
		entity.AuditActionTemplateSaved, entity.AuditActionStepAdded, entity.AuditActionStepUpdated,
	}, store.actions())
	added := store.audit[1]
	assert.Equal(t, created.ID, added.ResourceID)
	assert.Equal(t, out.Steps[1].ID, added.Details["step_id"])
	assert.Equal(t, "safety-training", added.Details["step_template_id"])
	assert.Equal(t, "A", store.audit[2].Details["step_id"])
}

func TestTemplateStepWrites_FalloRevierteEIdentificaSubPaso(t *testing.T) {
	title := "Kickoff"
	add := func(uc *TemplateUseCase, id string) error {
		_, err := uc.AddStep(context.Background(), manager, id, dto.AddStepRequest{StepTemplateID: "safety-training"})
		return err
	}
	update := func(uc *TemplateUseCase, id string) error {
		_, err := uc.UpdateStep(context.Background(), manager, id, "A", dto.UpdateStepRequest{Title: &title})
		return err
	}
	cases := []struct {
		name   string
		inject func(*memStore)
		call   func(*TemplateUseCase, string) error
		op     string
	}{
		{"alta de paso", func(s *memStore) { s.failAddStep = errors.New("connection reset") }, add, OpAddStep},
		{"auditoría del alta", func(s *memStore) { s.failAudit = errors.New("read-only") }, add, OpAuditInsert},
		{"edición de paso", func(s *memStore) { s.failUpdateStep = errors.New("connection reset") }, update, OpUpdateStep},
		{"auditoría de la edición", func(s *memStore) { s.failAudit = errors.New("read-only") }, update, OpAuditInsert},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := newTemplateUC(t)
			created, err := uc.Save(context.Background(), manager, saveRequest(stepIn("A", 1)))
			require.NoError(t, err)
			tc.inject(store)

			err = tc.call(uc, created.ID)
			var serr *domain.StorageError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tc.op, serr.Op)

			persisted := store.templates[created.ID]
			require.Len(t, persisted.Steps, 1)
			assert.Equal(t, "A", persisted.Steps[0].Title)
			assert.Equal(t, []string{entity.AuditActionTemplateSaved}, store.actions())
		})
	}
}

func TestTemplateClone_PersisteCopiaIndependiente(t *testing.T) {
	uc, store := newTemplateUC(t)
	ctx := context.Background()
	created, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1), stepIn("B", 1, "A")))
	require.NoError(t, err)

	out, err := uc.Clone(ctx, manager, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, out.ID)
	assert.Equal(t, "Sound Engineer (copy)", out.Name)
	assert.Zero(t, out.UseCount)
	assert.Equal(t, []string{out.Steps[0].ID}, out.Steps[1].DependsOn)
	assert.Len(t, store.templates, 2)
}

func TestTemplateList_FiltraPorSedeYDepartamento(t *testing.T) {
	uc, _ := newTemplateUC(t)
	ctx := context.Background()
	_, err := uc.Save(ctx, manager, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)
	bar := saveRequest(stepIn("A", 1))
	bar.Name, bar.Department, bar.Position = "Bartender", "Bar", "Bartender"
	_, err = uc.Save(ctx, manager, bar)
	require.NoError(t, err)
	_, err = uc.Save(ctx, outsider, saveRequest(stepIn("A", 1)))
	require.NoError(t, err)

	all, err := uc.List(ctx, manager, dto.TemplateListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	onlyBar, err := uc.List(ctx, manager, dto.TemplateListRequest{Department: "Bar"})
	require.NoError(t, err)
	require.Len(t, onlyBar.Items, 1)
	assert.Equal(t, "Bartender", onlyBar.Items[0].Name)
}

func TestCatalog_EntradaDesconocida(t *testing.T) {
	uc, _ := newTemplateUC(t)
	assert.Len(t, uc.ListCatalog(), 10)

	_, err := uc.GetCatalogEntry("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
