package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Templates  TemplateRepository
	Sessions   SessionRepository
	Candidates CandidateRepository
	Audit      AuditLogRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil,
// Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
