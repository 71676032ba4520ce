// Package compliance contiene los casos de uso de auditoría, permisos y
// cumplimiento normativo de una sede.
package compliance

import "github.com/jhoicas/venue-api/internal/application/dto"

// PermissionMatrix matriz estática rol -> permisos con herencia
// admin ⊇ manager ⊇ supervisor ⊇ staff.
type PermissionMatrix interface {
	// Permissions devuelve el conjunto resuelto (incluye lo heredado), ordenado.
	// Un rol desconocido devuelve un conjunto vacío.
	Permissions(role string) []string
	Allowed(role, action string) bool
}

// ReportRenderer convierte el reporte de cumplimiento a un documento (PDF).
type ReportRenderer interface {
	Render(report *dto.ComplianceReport) ([]byte, error)
}

// Options parámetros configurables del puntaje y los chequeos.
type Options struct {
	HighWeight       int
	IssueWeight      int
	RetentionDays    int
	RecentAuditLimit int
}

// DefaultOptions valores por defecto (convención del sistema, no normativa).
func DefaultOptions() Options {
	return Options{HighWeight: 10, IssueWeight: 2, RetentionDays: 365, RecentAuditLimit: 50}
}
