// Package rbac: política de acceso por rol (RBAC) de la app de nómina.
// Funciones puras sin efectos: no consultan base de datos ni sesión, solo el
// snapshot de usuario recibido. Ante ausencia de datos responden "denegado".

package rbac

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// Permission capacidad booleana derivada de (rol, activo).
type Permission string

// Permisos de la aplicación, en orden de declaración.
const (
	PermManageEmployees   Permission = "manage_employees"
	PermViewStatistics    Permission = "view_statistics"
	PermManageUsers       Permission = "manage_users"
	PermRegisterPayments  Permission = "register_payments"
	PermRegisterDiscounts Permission = "register_discounts"
	PermRegisterAdvances  Permission = "register_advances"
)

// AllPermissions devuelve todos los permisos en orden de declaración.
func AllPermissions() []Permission {
	return []Permission{
		PermManageEmployees,
		PermViewStatistics,
		PermManageUsers,
		PermRegisterPayments,
		PermRegisterDiscounts,
		PermRegisterAdvances,
	}
}

// adminOnly permisos que OPERATOR nunca recibe.
var adminOnly = map[Permission]bool{
	PermManageEmployees: true,
	PermViewStatistics:  true,
	PermManageUsers:     true,
}

// IsAdminOnly informa si el permiso está reservado a ADMIN.
func IsAdminOnly(p Permission) bool { return adminOnly[p] }

// rolePermissions tabla estática rol → permisos.
// OPERATOR ⊆ ADMIN salvo los permisos de adminOnly.
var rolePermissions = map[entity.Role]map[Permission]bool{
	entity.RoleAdmin: {
		PermManageEmployees:   true,
		PermViewStatistics:    true,
		PermManageUsers:       true,
		PermRegisterPayments:  true,
		PermRegisterDiscounts: true,
		PermRegisterAdvances:  true,
	},
	entity.RoleOperator: {
		PermRegisterPayments:  true,
		PermRegisterDiscounts: true,
		PermRegisterAdvances:  true,
	},
}

// HasPermission informa si el usuario tiene el permiso.
// Siempre false para usuario nil o inactivo, sin importar el rol.
func HasPermission(user *entity.User, p Permission) bool {
	if user == nil || !user.IsActive {
		return false
	}
	return rolePermissions[user.Role][p]
}

// Permissions devuelve los permisos concedidos al usuario en orden de declaración.
// Nunca devuelve nil: un usuario sin permisos recibe un slice vacío.
func Permissions(user *entity.User) []Permission {
	out := []Permission{}
	for _, p := range AllPermissions() {
		if HasPermission(user, p) {
			out = append(out, p)
		}
	}
	return out
}
