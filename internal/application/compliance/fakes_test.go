package compliance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var fixedNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

var admin = dto.Actor{UserID: "user-1", VenueID: "venue-1", Role: entity.RoleAdmin, IPAddress: "10.0.0.1", UserAgent: "test"}

type fakeStaff struct {
	missing  []entity.StaffMember
	expired  []repository.ExpiredCertification
	training []entity.StaffMember
	counts   entity.StaffCounts

	missingErr, expiredErr, trainingErr, countsErr error
}

func (f *fakeStaff) ListMissingBackgroundChecks(context.Context, string) ([]entity.StaffMember, error) {
	return f.missing, f.missingErr
}

func (f *fakeStaff) ListExpiredCertifications(context.Context, string, time.Time) ([]repository.ExpiredCertification, error) {
	return f.expired, f.expiredErr
}

func (f *fakeStaff) ListIncompleteTraining(context.Context, string) ([]entity.StaffMember, error) {
	return f.training, f.trainingErr
}

func (f *fakeStaff) Counts(context.Context, string) (entity.StaffCounts, error) {
	return f.counts, f.countsErr
}

type fakeAudit struct {
	mu        sync.Mutex
	entries   []entity.AuditLogEntry
	lastQuery repository.AuditFilter
	oldCount  int
	insertErr error
	countErr  error
	purgeErr  error
	purgeCut  time.Time
}

func (f *fakeAudit) Insert(_ context.Context, e *entity.AuditLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAudit) Query(_ context.Context, q repository.AuditFilter) ([]entity.AuditLogEntry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	out := append([]entity.AuditLogEntry{}, f.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, len(out), nil
}

func (f *fakeAudit) Recent(_ context.Context, _ string, limit int) ([]entity.AuditLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return append([]entity.AuditLogEntry{}, f.entries[:limit]...), nil
}

func (f *fakeAudit) CountOlderThan(context.Context, string, time.Time) (int, error) {
	return f.oldCount, f.countErr
}

func (f *fakeAudit) PurgeOlderThan(_ context.Context, _ string, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purgeCut = cutoff
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	kept := make([]entity.AuditLogEntry, 0, len(f.entries))
	var n int64
	for _, e := range f.entries {
		if e.Timestamp.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return n, nil
}

// auditTx corre fn sobre el fake y restaura sus entradas si fn falla.
type auditTx struct{ f *fakeAudit }

func (tx auditTx) Run(_ context.Context, fn func(repos repository.TxRepos) error) error {
	tx.f.mu.Lock()
	snap := append([]entity.AuditLogEntry{}, tx.f.entries...)
	tx.f.mu.Unlock()
	if err := fn(repository.TxRepos{Audit: tx.f}); err != nil {
		tx.f.mu.Lock()
		tx.f.entries = snap
		tx.f.mu.Unlock()
		return err
	}
	return nil
}

type fakeUsers struct{ users map[string]*entity.User }

func (f fakeUsers) Create(context.Context, *entity.User) error { return nil }

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f fakeUsers) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

// staticMatrix matriz fija para probar el caso de uso sin casbin.
type staticMatrix map[string][]string

func (m staticMatrix) Permissions(role string) []string {
	return append([]string{}, m[role]...)
}

func (m staticMatrix) Allowed(role, action string) bool {
	for _, p := range m[role] {
		if p == action {
			return true
		}
	}
	return false
}

type fakeRenderer struct{ got *dto.ComplianceReport }

func (r *fakeRenderer) Render(report *dto.ComplianceReport) ([]byte, error) {
	r.got = report
	return []byte("%PDF-1.4"), nil
}
