package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/rbac"
)

func allUsers() []*entity.User {
	var out []*entity.User
	for _, role := range entity.Roles() {
		out = append(out, user(role, true), user(role, false))
	}
	return out
}

func TestRouteTable_SinPrefijosDuplicados(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range rbac.RouteTable() {
		require.False(t, seen[rule.Prefix], "prefijo duplicado: %s", rule.Prefix)
		seen[rule.Prefix] = true
	}
}

func TestMatchRoute(t *testing.T) {
	cases := []struct {
		route  string
		prefix string
		found  bool
	}{
		{"statistics", rbac.RouteStatistics, true},
		{"employee_detail/42", rbac.RouteEmployeeDetail, true},
		{"employee_detail", rbac.RouteEmployeeDetail, true},
		{"employees", rbac.RouteEmployees, true},
		{"employees_archive", "", false},
		{"edit_employee/7", rbac.RouteEditEmployee, true},
		{"payment_receipt/abc", rbac.RoutePaymentReceipt, true},
		{"", "", false},
		{"nonexistent_route", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.route, func(t *testing.T) {
			rule, ok := rbac.MatchRoute(tc.route)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.prefix, rule.Prefix)
		})
	}
}

func TestCanAccessRoute_RutasSinPermisoAbiertasATodoActivo(t *testing.T) {
	for _, rule := range rbac.RouteTable() {
		if rule.RequiresPermission() {
			continue
		}
		for _, role := range entity.Roles() {
			assert.True(t, rbac.CanAccessRoute(user(role, true), rule.Prefix), "%s en %s", role, rule.Prefix)
			assert.True(t, rbac.CanAccessRoute(user(role, true), rule.Prefix+"/1"))
		}
	}
}

func TestCanAccessRoute_EquivaleAHasPermission(t *testing.T) {
	for _, rule := range rbac.RouteTable() {
		if !rule.RequiresPermission() {
			continue
		}
		for _, u := range allUsers() {
			assert.Equal(t, rbac.HasPermission(u, rule.Permission), rbac.CanAccessRoute(u, rule.Prefix),
				"ruta %s rol %s activo=%v", rule.Prefix, u.Role, u.IsActive)
		}
	}
}

func TestCanAccessRoute_SinUsuarioDeniegaTodo(t *testing.T) {
	for _, rule := range rbac.RouteTable() {
		assert.False(t, rbac.CanAccessRoute(nil, rule.Prefix))
	}
	assert.False(t, rbac.CanAccessRoute(nil, "nonexistent_route"))
}

func TestCanAccessRoute_RutaDesconocidaDeniega(t *testing.T) {
	for _, u := range allUsers() {
		assert.False(t, rbac.CanAccessRoute(u, "nonexistent_route"))
	}
}

func TestCanAccessRoute_AdminDesactivadoPierdeEstadisticas(t *testing.T) {
	admin := user(entity.RoleAdmin, true)
	assert.True(t, rbac.CanAccessRoute(admin, "statistics"))

	admin.IsActive = false
	assert.False(t, rbac.CanAccessRoute(admin, "statistics"))
}

func TestCanAccessRoute_Operador(t *testing.T) {
	op := user(entity.RoleOperator, true)
	assert.False(t, rbac.CanAccessRoute(op, "add_employee"))
	assert.True(t, rbac.CanAccessRoute(op, "add_payment"))
	assert.True(t, rbac.CanAccessRoute(op, "employee_detail/15"))
	assert.False(t, rbac.CanAccessRoute(op, "users"))
}
