package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/venue-api/internal/domain"
)

const uniqueViolationCode = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}

// storageErr traduce un error de pgx al tipo de dominio: plazo vencido -> TimeoutError,
// cualquier otro -> StorageError con la operación que falló.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return &domain.TimeoutError{Op: op, Err: err}
	}
	return &domain.StorageError{Op: op, Err: err}
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringsOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// jsonb serializa v para columnas JSONB.
func jsonb(v any) ([]byte, error) {
	return json.Marshal(v)
}

// limitOffset agrega LIMIT/OFFSET con los dos placeholders siguientes a n argumentos.
func limitOffset(n int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
}
