package entity

// Permisos de la matriz rol -> acción.
const (
	PermCatalogRead         = "catalog.read"
	PermTemplateRead        = "template.read"
	PermTemplateWrite       = "template.write"
	PermSessionRead         = "session.read"
	PermSessionCreate       = "session.create"
	PermSessionStepUpdate   = "session.step_update"
	PermCandidateRead       = "candidate.read"
	PermCandidateCreate     = "candidate.create"
	PermCandidateDocument   = "candidate.document_attach"
	PermCandidateStage      = "candidate.stage_advance"
	PermCandidateStageForce = "candidate.stage_force"
	PermCandidateReject     = "candidate.reject"
	PermAuditRead           = "audit.read"
	PermAuditWrite          = "audit.write"
	PermAuditPurge          = "audit.purge"
	PermComplianceRead      = "compliance.read"
	PermComplianceReport    = "compliance.report"
	PermSecurityRead        = "security.read"
	PermUserCreate          = "user.create"
)

// RoleHierarchy roles de mayor a menor privilegio; cada uno hereda los permisos del siguiente.
var RoleHierarchy = []string{RoleAdmin, RoleManager, RoleSupervisor, RoleStaff}

// RoleGrants permisos propios de cada rol (sin contar los heredados).
var RoleGrants = map[string][]string{
	RoleStaff: {
		PermCatalogRead, PermTemplateRead, PermSessionRead, PermSessionStepUpdate, PermAuditWrite,
	},
	RoleSupervisor: {
		PermCandidateRead, PermCandidateCreate, PermCandidateDocument, PermCandidateStage,
		PermSessionCreate, PermComplianceRead,
	},
	RoleManager: {
		PermTemplateWrite, PermCandidateReject, PermCandidateStageForce, PermAuditRead, PermComplianceReport,
	},
	RoleAdmin: {
		PermAuditPurge, PermSecurityRead, PermUserCreate,
	},
}
