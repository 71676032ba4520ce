package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

type sessionFixture struct {
	store      *memStore
	sessions   *SessionUseCase
	templates  *TemplateUseCase
	candidates *CandidateUseCase
}

func newSessionFixture(t *testing.T) sessionFixture {
	t.Helper()
	tuc, store := newTemplateUC(t)
	cuc := NewCandidateUseCase(memCandidates{store}, memTx{store})
	cuc.now = stubClock
	suc := NewSessionUseCase(memSessions{store}, memCandidates{store}, memTemplates{store}, memTx{store})
	suc.now = stubClock
	return sessionFixture{store: store, sessions: suc, templates: tuc, candidates: cuc}
}

// soundEngineer guarda la plantilla Welcome -> {Equipment Training, Safety}.
func (f sessionFixture) soundEngineer(t *testing.T) *dto.TemplateResponse {
	t.Helper()
	welcome := stepIn("welcome", 2)
	welcome.Title = "Welcome"
	equipment := stepIn("equipment", 6, "welcome")
	equipment.Title = "Equipment Training"
	safety := stepIn("safety", 4, "welcome")
	safety.Title = "Safety"
	tpl, err := f.templates.Save(context.Background(), manager, saveRequest(welcome, equipment, safety))
	require.NoError(t, err)
	return tpl
}

func stepID(t *testing.T, s *dto.SessionResponse, title string) string {
	t.Helper()
	for _, st := range s.Steps {
		if st.Title == title {
			return st.ID
		}
	}
	t.Fatalf("paso %q no encontrado", title)
	return ""
}

func TestSession_EscenarioSarahJohnson(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	tpl := f.soundEngineer(t)
	cand, err := f.candidates.Create(ctx, manager, sarah())
	require.NoError(t, err)

	s, err := f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: tpl.ID})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", s.Status)
	assert.Equal(t, 1, f.store.templates[tpl.ID].UseCount)

	_, err = f.sessions.SetStepStatus(ctx, manager, s.ID, stepID(t, s, "Safety"), dto.SetStepStatusRequest{Status: "completed"})
	assert.True(t, errors.Is(err, domain.ErrDependencyNotSatisfied))

	res, err := f.sessions.SetStepStatus(ctx, manager, s.ID, stepID(t, s, "Welcome"), dto.SetStepStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, 33.3, res.Session.Progress.Percent)
	assert.Equal(t, "pending", res.Event.From)
	assert.Equal(t, "completed", res.Event.To)
	assert.Equal(t, dto.VariantSuccess, res.Notification.Variant)

	_, err = f.sessions.SetStepStatus(ctx, manager, s.ID, stepID(t, s, "Equipment Training"), dto.SetStepStatusRequest{Status: "completed"})
	require.NoError(t, err)
	res, err = f.sessions.SetStepStatus(ctx, manager, s.ID, stepID(t, s, "Safety"), dto.SetStepStatusRequest{Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, float64(100), res.Session.Progress.Percent)
	assert.Equal(t, "completed", res.Session.Status)
	assert.Equal(t, "Onboarding completado", res.Notification.Title)

	p, err := f.sessions.Progress(ctx, manager, s.ID)
	require.NoError(t, err)
	assert.Zero(t, p.EstimatedDaysRemaining)

	actions := f.store.actions()
	assert.Contains(t, actions, entity.AuditActionSessionCreated)
	assert.Equal(t, 3, countOf(actions, entity.AuditActionStepStatusChanged))
}

func TestSession_CandidatoRechazadoNoAvanza(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	tpl := f.soundEngineer(t)
	cand, err := f.candidates.Create(ctx, manager, sarah())
	require.NoError(t, err)
	s, err := f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: tpl.ID})
	require.NoError(t, err)
	_, err = f.candidates.Reject(ctx, manager, cand.ID, dto.RejectCandidateRequest{Reason: "no se presentó"})
	require.NoError(t, err)

	_, err = f.sessions.SetStepStatus(ctx, manager, s.ID, stepID(t, s, "Welcome"), dto.SetStepStatusRequest{Status: "completed"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: tpl.ID})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSession_ReferenciasInexistentes(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	cand, err := f.candidates.Create(ctx, manager, sarah())
	require.NoError(t, err)

	_, err = f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: "missing"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.sessions.Get(ctx, manager, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	tpl := f.soundEngineer(t)
	s, err := f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: tpl.ID})
	require.NoError(t, err)
	_, err = f.sessions.SetStepStatus(ctx, manager, s.ID, "missing", dto.SetStepStatusRequest{Status: "completed"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.sessions.Get(ctx, outsider, s.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSession_FalloDeEscrituraSeReportaComoStorage(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	tpl := f.soundEngineer(t)
	cand, err := f.candidates.Create(ctx, manager, sarah())
	require.NoError(t, err)
	s, err := f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: tpl.ID})
	require.NoError(t, err)
	f.store.failUpdate = errors.New("disk full")

	_, err = f.sessions.SetStepStatus(ctx, manager, s.ID, stepID(t, s, "Welcome"), dto.SetStepStatusRequest{Status: "in_progress"})
	var serr *domain.StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "session.update", serr.Op)
}

func TestSession_ListByCandidate(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	tpl := f.soundEngineer(t)
	cand, err := f.candidates.Create(ctx, manager, sarah())
	require.NoError(t, err)
	_, err = f.sessions.Create(ctx, manager, cand.ID, dto.CreateSessionRequest{TemplateID: tpl.ID})
	require.NoError(t, err)

	list, err := f.sessions.ListByCandidate(ctx, manager, cand.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sound Engineer", list[0].TemplateName)
}

func countOf(list []string, v string) int {
	n := 0
	for _, s := range list {
		if s == v {
			n++
		}
	}
	return n
}
