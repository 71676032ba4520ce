package postgres

import (
	"context"

	"github.com/jhoicas/venue-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db txBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storageErr("tx.begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.TxRepos{
		Templates:  NewTemplateRepository(tx),
		Sessions:   NewSessionRepository(tx),
		Candidates: NewCandidateRepository(tx),
		Audit:      NewAuditLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("tx.commit", err)
	}
	return nil
}
