// Package authz implementa la matriz rol -> permisos sobre casbin (RBAC con herencia de roles).
package authz

import (
	"fmt"
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/jhoicas/venue-api/internal/application/compliance"
	"github.com/jhoicas/venue-api/internal/domain/entity"
)

var _ compliance.PermissionMatrix = (*Matrix)(nil)

// rbacModel sujeto = rol, objeto = acción. g encadena la herencia entre roles.
const rbacModel = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.act == p.act
`

// Matrix matriz estática construida en código: no hay adapter ni políticas en disco.
type Matrix struct {
	mu       sync.RWMutex
	enforcer *casbin.Enforcer
	resolved map[string][]string
}

// NewMatrix construye la matriz con la jerarquía y permisos de entity.
func NewMatrix() (*Matrix, error) {
	return NewMatrixFrom(entity.RoleHierarchy, entity.RoleGrants)
}

// NewMatrixFrom construye la matriz a partir de una jerarquía (mayor a menor
// privilegio) y los permisos propios de cada rol.
func NewMatrixFrom(hierarchy []string, grants map[string][]string) (*Matrix, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: modelo rbac: %w", err)
	}
	enf, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: crear enforcer: %w", err)
	}
	for role, perms := range grants {
		for _, p := range perms {
			if _, err := enf.AddPolicy(role, p); err != nil {
				return nil, fmt.Errorf("authz: política %s/%s: %w", role, p, err)
			}
		}
	}
	for i := 0; i+1 < len(hierarchy); i++ {
		if _, err := enf.AddGroupingPolicy(hierarchy[i], hierarchy[i+1]); err != nil {
			return nil, fmt.Errorf("authz: herencia %s -> %s: %w", hierarchy[i], hierarchy[i+1], err)
		}
	}

	mx := &Matrix{enforcer: enf, resolved: make(map[string][]string, len(hierarchy))}
	for _, role := range hierarchy {
		rules, err := enf.GetImplicitPermissionsForUser(role)
		if err != nil {
			return nil, fmt.Errorf("authz: permisos implícitos de %s: %w", role, err)
		}
		seen := make(map[string]struct{}, len(rules))
		perms := make([]string, 0, len(rules))
		for _, rule := range rules {
			if len(rule) < 2 {
				continue
			}
			if _, dup := seen[rule[1]]; dup {
				continue
			}
			seen[rule[1]] = struct{}{}
			perms = append(perms, rule[1])
		}
		sort.Strings(perms)
		mx.resolved[role] = perms
	}
	return mx, nil
}

// Permissions devuelve una copia del conjunto resuelto; vacío para roles desconocidos.
func (m *Matrix) Permissions(role string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	perms, ok := m.resolved[role]
	if !ok {
		return []string{}
	}
	return append([]string{}, perms...)
}

// Allowed evalúa la acción con el enforcer. Un error del enforcer deniega.
func (m *Matrix) Allowed(role, action string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.resolved[role]; !ok {
		return false
	}
	ok, err := m.enforcer.Enforce(role, action)
	return err == nil && ok
}
