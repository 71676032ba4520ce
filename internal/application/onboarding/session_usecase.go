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

// SessionUseCase sesiones de onboarding: creación desde plantilla, avance de pasos y progreso.
type SessionUseCase struct {
	sessions   repository.SessionRepository
	candidates repository.CandidateRepository
	templates  repository.TemplateRepository
	tx         repository.TxRunner
	now        func() time.Time
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	sessions repository.SessionRepository,
	candidates repository.CandidateRepository,
	templates repository.TemplateRepository,
	tx repository.TxRunner,
) *SessionUseCase {
	return &SessionUseCase{sessions: sessions, candidates: candidates, templates: templates, tx: tx, now: time.Now}
}

// Create instancia la plantilla para el candidato e incrementa el useCount de la plantilla.
func (uc *SessionUseCase) Create(ctx context.Context, actor dto.Actor, candidateID string, in dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.loadCandidate(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	t, err := uc.templates.GetByID(ctx, in.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("obtener plantilla: %w", err)
	}
	if t == nil || t.VenueID != actor.VenueID {
		return nil, domain.NewNotFoundError("plantilla", in.TemplateID)
	}

	now := uc.now()
	s, err := domainob.NewSession(c, t, now)
	if err != nil {
		return nil, err
	}
	s.Version = 1

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Sessions.Create(ctx, s); err != nil {
			return domain.AtStep("session.create", err)
		}
		if err := repos.Templates.IncrementUseCount(ctx, t.ID); err != nil {
			return domain.AtStep("template.increment_use_count", err)
		}
		entry := auditEntry(actor, entity.AuditActionSessionCreated, "onboarding_session", s.ID,
			map[string]any{"candidate_id": c.ID, "template_id": t.ID}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	return toSessionResponse(s), nil
}

// Get devuelve la sesión con su progreso recalculado.
func (uc *SessionUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.SessionResponse, error) {
	s, err := uc.loadSession(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// ListByCandidate sesiones de un candidato, más recientes primero.
func (uc *SessionUseCase) ListByCandidate(ctx context.Context, actor dto.Actor, candidateID string) ([]dto.SessionResponse, error) {
	if _, err := uc.loadCandidate(ctx, actor, candidateID); err != nil {
		return nil, err
	}
	list, err := uc.sessions.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listar sesiones: %w", err)
	}
	out := make([]dto.SessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSessionResponse(s))
	}
	return out, nil
}

// Progress avance derivado; no se guarda en ningún lado.
func (uc *SessionUseCase) Progress(ctx context.Context, actor dto.Actor, id string) (*dto.ProgressResponse, error) {
	s, err := uc.loadSession(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	p := toProgressResponse(domainob.ComputeProgress(s))
	return &p, nil
}

// SetStepStatus aplica la máquina de estados al paso y deriva el estado de la
// sesión. Paso, sesión y entrada de auditoría se escriben en una transacción.
func (uc *SessionUseCase) SetStepStatus(ctx context.Context, actor dto.Actor, sessionID, stepID string, in dto.SetStepStatusRequest) (*dto.StepStatusResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.loadSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	c, err := uc.loadCandidate(ctx, actor, s.CandidateID)
	if err != nil {
		return nil, err
	}
	if c.Status == entity.CandidateStatusRejected {
		return nil, domain.NewValidationError("el candidato fue rechazado", c.ID)
	}
	step := s.Step(stepID)
	if step == nil {
		return nil, domain.NewNotFoundError("paso", stepID)
	}

	now := uc.now()
	ev, err := domainob.SetStatus(step, entity.StepStatus(in.Status), s.Steps, now)
	if err != nil {
		return nil, err
	}
	domainob.RefreshStatus(s, now)
	s.UpdatedAt = now

	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Sessions.Update(ctx, s); err != nil {
			return domain.AtStep("session.update", err)
		}
		entry := auditEntry(actor, entity.AuditActionStepStatusChanged, "onboarding_session", s.ID, map[string]any{
			"step_id":        ev.StepID,
			"from":           string(ev.From),
			"to":             string(ev.To),
			"session_status": string(s.Status),
		}, now)
		return domain.AtStep(OpAuditInsert, repos.Audit.Insert(ctx, entry))
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar paso: %w", err)
	}

	note := dto.Success("Paso actualizado", fmt.Sprintf("%q ahora está %s", ev.StepTitle, ev.To))
	if s.Status == entity.SessionStatusCompleted {
		note = dto.Success("Onboarding completado", fmt.Sprintf("%s completó %s", c.Name, s.TemplateName))
	}
	return &dto.StepStatusResponse{
		Session:      *toSessionResponse(s),
		Event:        toTransitionDTO(ev),
		Notification: note,
	}, nil
}

func (uc *SessionUseCase) loadSession(ctx context.Context, actor dto.Actor, id string) (*entity.OnboardingSession, error) {
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener sesión: %w", err)
	}
	if s == nil || s.VenueID != actor.VenueID {
		return nil, domain.NewNotFoundError("sesión", id)
	}
	return s, nil
}

func (uc *SessionUseCase) loadCandidate(ctx context.Context, actor dto.Actor, id string) (*entity.Candidate, error) {
	c, err := uc.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener candidato: %w", err)
	}
	if c == nil || c.VenueID != actor.VenueID {
		return nil, domain.NewNotFoundError("candidato", id)
	}
	return c, nil
}
