package rbac

import (
	"strings"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// Rutas navegables del cliente. Las parametrizadas se usan como prefijo:
// "employee_detail/42" coincide con RouteEmployeeDetail.
const (
	RouteHome           = "home"
	RouteProfile        = "profile"
	RouteEmployees      = "employees"
	RouteEmployeeDetail = "employee_detail"
	RouteAddEmployee    = "add_employee"
	RouteEditEmployee   = "edit_employee"
	RoutePayments       = "payments"
	RouteAddPayment     = "add_payment"
	RoutePaymentReceipt = "payment_receipt"
	RouteDiscounts      = "discounts"
	RouteAddDiscount    = "add_discount"
	RouteAdvances       = "advances"
	RouteAddAdvance     = "add_advance"
	RouteStatistics     = "statistics"
	RouteUsers          = "users"
	RouteUserDetail     = "user_detail"
)

// RouteRule par (prefijo, permiso requerido). Permission vacío = cualquier usuario activo.
type RouteRule struct {
	Prefix     string
	Permission Permission
}

// RequiresPermission informa si la regla exige algún permiso.
func (r RouteRule) RequiresPermission() bool { return r.Permission != "" }

// routeTable tabla estática de reglas. Sin prefijos repetidos (ver routes_test.go).
var routeTable = []RouteRule{
	{Prefix: RouteHome},
	{Prefix: RouteProfile},
	{Prefix: RouteEmployees},
	{Prefix: RouteEmployeeDetail},
	{Prefix: RouteAddEmployee, Permission: PermManageEmployees},
	{Prefix: RouteEditEmployee, Permission: PermManageEmployees},
	{Prefix: RoutePayments, Permission: PermRegisterPayments},
	{Prefix: RouteAddPayment, Permission: PermRegisterPayments},
	{Prefix: RoutePaymentReceipt, Permission: PermRegisterPayments},
	{Prefix: RouteDiscounts, Permission: PermRegisterDiscounts},
	{Prefix: RouteAddDiscount, Permission: PermRegisterDiscounts},
	{Prefix: RouteAdvances, Permission: PermRegisterAdvances},
	{Prefix: RouteAddAdvance, Permission: PermRegisterAdvances},
	{Prefix: RouteStatistics, Permission: PermViewStatistics},
	{Prefix: RouteUsers, Permission: PermManageUsers},
	{Prefix: RouteUserDetail, Permission: PermManageUsers},
}

// RouteTable devuelve una copia de la tabla de reglas en orden de declaración.
func RouteTable() []RouteRule {
	out := make([]RouteRule, len(routeTable))
	copy(out, routeTable)
	return out
}

// MatchRoute busca la regla aplicable a la ruta.
//
// Regla de precedencia: gana el prefijo más largo. Un prefijo coincide si la
// ruta es exactamente el prefijo o continúa con "/" ("employees" no coincide con
// "employees_archive"). A igual longitud gana la regla declarada primero.
func MatchRoute(route string) (RouteRule, bool) {
	var (
		best  RouteRule
		found bool
	)
	for _, rule := range routeTable {
		if !prefixMatches(rule.Prefix, route) {
			continue
		}
		if !found || len(rule.Prefix) > len(best.Prefix) {
			best, found = rule, true
		}
	}
	return best, found
}

func prefixMatches(prefix, route string) bool {
	if !strings.HasPrefix(route, prefix) {
		return false
	}
	return len(route) == len(prefix) || route[len(prefix)] == '/'
}

// CanAccessRoute informa si el usuario puede navegar a la ruta.
// Usuario nil o inactivo y rutas desconocidas se deniegan (fail-closed).
func CanAccessRoute(user *entity.User, route string) bool {
	if user == nil || !user.IsActive {
		return false
	}
	rule, ok := MatchRoute(route)
	if !ok {
		return false
	}
	if !rule.RequiresPermission() {
		return true
	}
	return HasPermission(user, rule.Permission)
}
