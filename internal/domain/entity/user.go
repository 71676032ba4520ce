package entity

import "time"

// Roles válidos para User, de mayor a menor privilegio.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleStaff      = "staff"
)

// User representa un usuario del sistema (pertenece a una sede).
type User struct {
	ID           string
	VenueID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, supervisor, staff
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
