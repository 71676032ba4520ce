package onboarding_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/onboarding"
)

func soundEngineerTemplate() *entity.OnboardingTemplate {
	welcome := step("welcome", 2)
	welcome.Title = "Welcome"
	equipment := step("equipment", 6, "welcome")
	equipment.Title = "Equipment Training"
	safety := step("safety", 4, "welcome")
	safety.Title = "Safety"
	return template(welcome, equipment, safety)
}

func findByTitle(t *testing.T, s *entity.OnboardingSession, title string) *entity.OnboardingStep {
	t.Helper()
	for i := range s.Steps {
		if s.Steps[i].Title == title {
			return &s.Steps[i]
		}
	}
	t.Fatalf("paso %q no encontrado", title)
	return nil
}

func TestSesion_EscenarioSoundEngineer(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	tpl := soundEngineerTemplate()
	c := candidate(entity.StageTraining, entity.CandidateStatusInProgress)

	s, err := onboarding.NewSession(c, tpl, now)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusInProgress, s.Status)
	assert.Equal(t, c.ID, s.CandidateID)
	assert.Equal(t, now, s.StartedAt)

	welcome := findByTitle(t, s, "Welcome")
	_, err = onboarding.SetStatus(welcome, entity.StepStatusCompleted, s.Steps, now)
	require.NoError(t, err)
	assert.InDelta(t, 33.3, onboarding.ComputeProgress(s).Percent, 0.05)
	assert.False(t, onboarding.RefreshStatus(s, now))

	_, err = onboarding.SetStatus(findByTitle(t, s, "Equipment Training"), entity.StepStatusCompleted, s.Steps, now)
	require.NoError(t, err)
	_, err = onboarding.SetStatus(findByTitle(t, s, "Safety"), entity.StepStatusCompleted, s.Steps, now)
	require.NoError(t, err)

	assert.Equal(t, float64(100), onboarding.ComputeProgress(s).Percent)
	assert.True(t, onboarding.RefreshStatus(s, now))
	assert.Equal(t, entity.SessionStatusCompleted, s.Status)
	require.NotNil(t, s.CompletedAt)
}

func TestNewSession_ClonaSinCompartirConPlantilla(t *testing.T) {
	tpl := soundEngineerTemplate()
	tpl.Steps[0].Status = entity.StepStatusCompleted
	s, err := onboarding.NewSession(candidate(entity.StageTraining, entity.CandidateStatusInProgress), tpl, time.Now())
	require.NoError(t, err)

	for i, st := range s.Steps {
		assert.NotEqual(t, tpl.Steps[i].ID, st.ID)
		assert.Equal(t, entity.StepStatusPending, st.Status)
	}
	welcomeID := s.Steps[0].ID
	assert.Equal(t, []string{welcomeID}, s.Steps[1].DependsOn)
	assert.Equal(t, []string{welcomeID}, s.Steps[2].DependsOn)
}

func TestNewSession_Rechazos(t *testing.T) {
	rejected := candidate(entity.StageInterview, entity.CandidateStatusRejected)
	_, err := onboarding.NewSession(rejected, soundEngineerTemplate(), time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = onboarding.NewSession(candidate(entity.StageInterview, entity.CandidateStatusPending), template(), time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestComputeProgress_Idempotente(t *testing.T) {
	s := &entity.OnboardingSession{Steps: []entity.OnboardingStep{step("A", 4), step("B", 6), step("C", 3)}}
	s.Steps[0].Status = entity.StepStatusCompleted
	s.Steps[1].Status = entity.StepStatusSkipped

	first := onboarding.ComputeProgress(s)
	second := onboarding.ComputeProgress(s)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, first.CompletedSteps)
	assert.Equal(t, 3, first.TotalSteps)
	assert.True(t, decimal.NewFromInt(9).Equal(first.RemainingHours))
	assert.Equal(t, 2, first.EstimatedDaysRemaining)
}

func TestComputeProgress_SesionVacia(t *testing.T) {
	p := onboarding.ComputeProgress(&entity.OnboardingSession{})
	assert.Zero(t, p.Percent)
	assert.Zero(t, p.EstimatedDaysRemaining)
}

func TestRefreshStatus_SkippedCuentaComoCerrado(t *testing.T) {
	s := &entity.OnboardingSession{Status: entity.SessionStatusInProgress, Steps: []entity.OnboardingStep{step("A", 1), step("B", 1)}}
	s.Steps[0].Status = entity.StepStatusCompleted
	s.Steps[1].Status = entity.StepStatusSkipped

	assert.True(t, onboarding.RefreshStatus(s, time.Now()))
	assert.Equal(t, entity.SessionStatusCompleted, s.Status)
}
