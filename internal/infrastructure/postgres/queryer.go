package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryer es compatible con *pgxpool.Pool, pgx.Tx y el pool de pgxmock: los
// repositorios no saben si corren dentro de una transacción.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// txBeginner abre transacciones (pool real o mock).
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
