package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/venue-api/internal/domain"
)

func TestErroresTipados_RespondenASuCentinela(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", domain.NewValidationError("x", "name"), domain.ErrValidation},
		{"not found", domain.NewNotFoundError("plantilla", "t1"), domain.ErrNotFound},
		{"dependency", &domain.DependencyNotSatisfiedError{StepID: "B", Unmet: []string{"A"}}, domain.ErrDependencyNotSatisfied},
		{"stage", &domain.InvalidStageTransitionError{From: "training", To: "interview"}, domain.ErrInvalidStageTransition},
		{"permission", &domain.PermissionDeniedError{UserID: "u1", Role: "staff", Action: "audit.purge"}, domain.ErrPermissionDenied},
		{"storage", &domain.StorageError{Op: "template.delete_step", Err: errors.New("boom")}, domain.ErrStorage},
		{"timeout", &domain.TimeoutError{Op: "audit.query", Err: context.DeadlineExceeded}, domain.ErrTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("use case: %w", tc.err)
			assert.True(t, errors.Is(wrapped, tc.sentinel))
			assert.False(t, errors.Is(wrapped, domain.ErrConflict))
		})
	}
}

func TestValidationError_MensajeConCiclo(t *testing.T) {
	err := &domain.ValidationError{Message: "el grafo de dependencias tiene un ciclo", Cycle: []string{"A", "B", "C", "A"}}
	assert.Equal(t, "el grafo de dependencias tiene un ciclo: ciclo A -> B -> C -> A", err.Error())
}

func TestStorageError_ConservaCausaYOp(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("remove step: %w", &domain.StorageError{Op: "template.cleanup_dependencies", Err: cause})

	var serr *domain.StorageError
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "template.cleanup_dependencies", serr.Op)
	assert.True(t, errors.Is(err, cause))
}

func TestTimeoutError_EnvuelveDeadline(t *testing.T) {
	err := &domain.TimeoutError{Op: "session.get", Err: context.DeadlineExceeded}
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, domain.ErrStorage))
}

func TestAtStep_ReetiquetaSegunTipo(t *testing.T) {
	assert.Nil(t, domain.AtStep("template.delete_step", nil))

	var serr *domain.StorageError
	err := domain.AtStep("template.delete_step", &domain.StorageError{Op: "delete template step", Err: errors.New("boom")})
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "template.delete_step", serr.Op)

	var terr *domain.TimeoutError
	err = domain.AtStep("template.cleanup_dependencies", &domain.TimeoutError{Op: "update deps", Err: context.DeadlineExceeded})
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, "template.cleanup_dependencies", terr.Op)

	assert.Same(t, domain.ErrConflict, domain.AtStep("session.update", domain.ErrConflict))
}
