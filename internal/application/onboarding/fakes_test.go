package onboarding

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var fixedNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

var (
	manager   = dto.Actor{UserID: "user-1", VenueID: "venue-1", Role: entity.RoleManager, IPAddress: "10.0.0.1"}
	outsider  = dto.Actor{UserID: "user-9", VenueID: "venue-2", Role: entity.RoleAdmin}
	stubClock = func() time.Time { return fixedNow }
)

// memStore implementa los repositorios en memoria. Devuelve copias para que el
// caso de uso no mute el estado "persistido" sin pasar por el repositorio.
type memStore struct {
	mu         sync.Mutex
	templates  map[string]entity.OnboardingTemplate
	sessions   map[string]entity.OnboardingSession
	candidates map[string]entity.Candidate
	audit      []entity.AuditLogEntry

	failCleanup    error
	failDelete     error
	failUpdate     error
	failAddStep    error
	failUpdateStep error
	failAudit      error
}

func newMemStore() *memStore {
	return &memStore{
		templates:  map[string]entity.OnboardingTemplate{},
		sessions:   map[string]entity.OnboardingSession{},
		candidates: map[string]entity.Candidate{},
	}
}

func cloneTemplate(t entity.OnboardingTemplate) entity.OnboardingTemplate {
	steps := make([]entity.OnboardingStep, len(t.Steps))
	for i, s := range t.Steps {
		steps[i] = s.Clone()
	}
	t.Steps = steps
	return t
}

func cloneSession(s entity.OnboardingSession) entity.OnboardingSession {
	steps := make([]entity.OnboardingStep, len(s.Steps))
	for i, st := range s.Steps {
		steps[i] = st.Clone()
	}
	s.Steps = steps
	return s
}

// ── TemplateRepository ──────────────────────────────────────────────────────

type memTemplates struct{ s *memStore }

func (r memTemplates) Create(_ context.Context, t *entity.OnboardingTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.templates[t.ID] = cloneTemplate(*t)
	return nil
}

func (r memTemplates) Update(_ context.Context, t *entity.OnboardingTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.templates[t.ID]; !ok {
		return domain.NewNotFoundError("plantilla", t.ID)
	}
	r.s.templates[t.ID] = cloneTemplate(*t)
	return nil
}

func (r memTemplates) GetByID(_ context.Context, id string) (*entity.OnboardingTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.templates[id]
	if !ok {
		return nil, nil
	}
	out := cloneTemplate(t)
	return &out, nil
}

func (r memTemplates) List(_ context.Context, f repository.TemplateFilter) ([]*entity.OnboardingTemplate, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OnboardingTemplate
	for _, t := range r.s.templates {
		if t.VenueID != f.VenueID || (f.Department != "" && t.Department != f.Department) {
			continue
		}
		c := cloneTemplate(t)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r memTemplates) IncrementUseCount(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.s.templates[id]
	t.UseCount++
	r.s.templates[id] = t
	return nil
}

func (r memTemplates) AddStep(_ context.Context, templateID string, step entity.OnboardingStep, _ int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAddStep != nil {
		return r.s.failAddStep
	}
	t := r.s.templates[templateID]
	t.Steps = append(t.Steps, step.Clone())
	r.s.templates[templateID] = t
	return nil
}

func (r memTemplates) UpdateStep(_ context.Context, templateID string, step entity.OnboardingStep) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdateStep != nil {
		return r.s.failUpdateStep
	}
	t := r.s.templates[templateID]
	for i := range t.Steps {
		if t.Steps[i].ID == step.ID {
			t.Steps[i] = step.Clone()
		}
	}
	r.s.templates[templateID] = t
	return nil
}

func (r memTemplates) UpdateStepDependencies(_ context.Context, templateID string, steps []entity.OnboardingStep) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCleanup != nil {
		return r.s.failCleanup
	}
	t := r.s.templates[templateID]
	for _, changed := range steps {
		for i := range t.Steps {
			if t.Steps[i].ID == changed.ID {
				t.Steps[i].DependsOn = append([]string{}, changed.DependsOn...)
			}
		}
	}
	r.s.templates[templateID] = t
	return nil
}

func (r memTemplates) DeleteStep(_ context.Context, templateID, stepID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failDelete != nil {
		return r.s.failDelete
	}
	t := r.s.templates[templateID]
	kept := t.Steps[:0]
	for _, st := range t.Steps {
		if st.ID != stepID {
			kept = append(kept, st)
		}
	}
	t.Steps = kept
	r.s.templates[templateID] = t
	return nil
}

// ── SessionRepository ───────────────────────────────────────────────────────

type memSessions struct{ s *memStore }

func (r memSessions) Create(_ context.Context, s *entity.OnboardingSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[s.ID] = cloneSession(*s)
	return nil
}

func (r memSessions) GetByID(_ context.Context, id string) (*entity.OnboardingSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	out := cloneSession(s)
	return &out, nil
}

func (r memSessions) ListByCandidate(_ context.Context, candidateID string) ([]*entity.OnboardingSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OnboardingSession
	for _, s := range r.s.sessions {
		if s.CandidateID == candidateID {
			c := cloneSession(s)
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memSessions) Update(_ context.Context, s *entity.OnboardingSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUpdate != nil {
		return r.s.failUpdate
	}
	cur, ok := r.s.sessions[s.ID]
	if !ok || cur.Version != s.Version {
		return domain.ErrConflict
	}
	s.Version++
	r.s.sessions[s.ID] = cloneSession(*s)
	return nil
}

// ── CandidateRepository ─────────────────────────────────────────────────────

type memCandidates struct{ s *memStore }

func (r memCandidates) Create(_ context.Context, c *entity.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.candidates[c.ID] = *c
	return nil
}

func (r memCandidates) GetByID(_ context.Context, id string) (*entity.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return nil, nil
	}
	c.Documents = append([]entity.CandidateDocument{}, c.Documents...)
	return &c, nil
}

func (r memCandidates) List(_ context.Context, f repository.CandidateFilter) ([]*entity.Candidate, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Candidate
	for _, c := range r.s.candidates {
		if c.VenueID != f.VenueID {
			continue
		}
		if (f.Status != "" && c.Status != f.Status) || (f.Stage != "" && c.Stage != f.Stage) {
			continue
		}
		cc := c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r memCandidates) Update(_ context.Context, c *entity.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.candidates[c.ID]
	if !ok || cur.Version != c.Version {
		return domain.ErrConflict
	}
	c.Version++
	r.s.candidates[c.ID] = *c
	return nil
}

// ── AuditLogRepository ──────────────────────────────────────────────────────

type memAudit struct{ s *memStore }

func (r memAudit) Insert(_ context.Context, e *entity.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAudit != nil {
		return r.s.failAudit
	}
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r memAudit) Query(context.Context, repository.AuditFilter) ([]entity.AuditLogEntry, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.AuditLogEntry{}, r.s.audit...), len(r.s.audit), nil
}

func (r memAudit) Recent(context.Context, string, int) ([]entity.AuditLogEntry, error) {
	return nil, nil
}

func (r memAudit) CountOlderThan(context.Context, string, time.Time) (int, error) { return 0, nil }

func (r memAudit) PurgeOlderThan(context.Context, string, time.Time) (int64, error) { return 0, nil }

func (s *memStore) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.audit))
	for _, e := range s.audit {
		out = append(out, e.Action)
	}
	return out
}

// memTx ejecuta fn con los repositorios en memoria. Si fn falla restaura la
// foto tomada al empezar, como haría un ROLLBACK.
type memTx struct{ s *memStore }

func (tx memTx) Run(_ context.Context, fn func(repos repository.TxRepos) error) error {
	snap := tx.s.snapshot()
	if err := fn(tx.s.repos()); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	templates  map[string]entity.OnboardingTemplate
	sessions   map[string]entity.OnboardingSession
	candidates map[string]entity.Candidate
	audit      []entity.AuditLogEntry
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		templates:  make(map[string]entity.OnboardingTemplate, len(s.templates)),
		sessions:   make(map[string]entity.OnboardingSession, len(s.sessions)),
		candidates: make(map[string]entity.Candidate, len(s.candidates)),
		audit:      append([]entity.AuditLogEntry{}, s.audit...),
	}
	for id, t := range s.templates {
		snap.templates[id] = cloneTemplate(t)
	}
	for id, ss := range s.sessions {
		snap.sessions[id] = cloneSession(ss)
	}
	for id, c := range s.candidates {
		c.Documents = append([]entity.CandidateDocument{}, c.Documents...)
		snap.candidates[id] = c
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = snap.templates
	s.sessions = snap.sessions
	s.candidates = snap.candidates
	s.audit = snap.audit
}

func (s *memStore) repos() repository.TxRepos {
	return repository.TxRepos{
		Templates:  memTemplates{s},
		Sessions:   memSessions{s},
		Candidates: memCandidates{s},
		Audit:      memAudit{s},
	}
}
