package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los errores tipados de abajo
// responden a errors.Is con su centinela, así la capa HTTP mapea por tipo.
var (
	ErrValidation             = errors.New("entrada inválida")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrDependencyNotSatisfied = errors.New("dependencias sin completar")
	ErrInvalidStageTransition = errors.New("transición de etapa no permitida")
	ErrPermissionDenied       = errors.New("permiso denegado")
	ErrStorage                = errors.New("error de almacenamiento")
	ErrTimeout                = errors.New("tiempo de espera agotado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
)

// ValidationError describe entrada inválida: campos faltantes, referencias
// desconocidas o el ciclo encontrado en el grafo de dependencias.
type ValidationError struct {
	Message string
	Fields  []string
	Cycle   []string
}

// NewValidationError construye un ValidationError con mensaje y campos opcionales.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields, ", "))
	}
	if len(e.Cycle) > 0 {
		b.WriteString(": ciclo ")
		b.WriteString(strings.Join(e.Cycle, " -> "))
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indica que el id referenciado no existe.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError construye un NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DependencyNotSatisfiedError bloquea la completitud de un paso con dependencias pendientes.
type DependencyNotSatisfiedError struct {
	StepID string
	Unmet  []string
}

func (e *DependencyNotSatisfiedError) Error() string {
	return fmt.Sprintf("paso %s: dependencias sin completar: %s", e.StepID, strings.Join(e.Unmet, ", "))
}

func (e *DependencyNotSatisfiedError) Is(target error) bool {
	return target == ErrDependencyNotSatisfied
}

// InvalidStageTransitionError indica un movimiento de etapa no permitido sin force.
type InvalidStageTransitionError struct {
	From string
	To   string
}

func (e *InvalidStageTransitionError) Error() string {
	return fmt.Sprintf("transición de etapa %s -> %s no permitida", e.From, e.To)
}

func (e *InvalidStageTransitionError) Is(target error) bool {
	return target == ErrInvalidStageTransition
}

// PermissionDeniedError indica que la acción no está en el conjunto de permisos del rol.
type PermissionDeniedError struct {
	UserID string
	Role   string
	Action string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("usuario %s (rol %q) sin permiso para %s", e.UserID, e.Role, e.Action)
}

func (e *PermissionDeniedError) Is(target error) bool { return target == ErrPermissionDenied }

// StorageError envuelve un fallo de persistencia. Op identifica el sub-paso que
// falló para que el llamador pueda reintentar solo ese paso.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// TimeoutError indica que la operación excedió el plazo de la petición.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: tiempo de espera agotado", e.Op)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// AtStep reetiqueta un error de persistencia con el sub-paso op. Los timeouts
// siguen siendo TimeoutError y los conflictos de versión pasan sin cambios.
func AtStep(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, ErrTimeout):
		return &TimeoutError{Op: op, Err: err}
	default:
		return &StorageError{Op: op, Err: err}
	}
}
