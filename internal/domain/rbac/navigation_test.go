package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/rbac"
)

func routes(items []rbac.NavigationItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Route)
	}
	return out
}

func TestAvailableNavigationItems_Admin(t *testing.T) {
	items := rbac.AvailableNavigationItems(user(entity.RoleAdmin, true))
	assert.Equal(t, routes(rbac.NavigationCatalog()), routes(items))
}

func TestAvailableNavigationItems_Operador(t *testing.T) {
	items := rbac.AvailableNavigationItems(user(entity.RoleOperator, true))
	assert.Equal(t, []string{
		rbac.RouteHome,
		rbac.RouteEmployees,
		rbac.RoutePayments,
		rbac.RouteDiscounts,
		rbac.RouteAdvances,
		rbac.RouteProfile,
	}, routes(items))
}

func TestAvailableNavigationItems_InactivoONil(t *testing.T) {
	assert.Empty(t, rbac.AvailableNavigationItems(nil))
	assert.Empty(t, rbac.AvailableNavigationItems(user(entity.RoleAdmin, false)))
}

func TestAvailableNavigationItems_CadaItemEsNavegable(t *testing.T) {
	for _, u := range allUsers() {
		for _, item := range rbac.AvailableNavigationItems(u) {
			assert.True(t, rbac.CanAccessRoute(u, item.Route), "item %s visible pero no navegable", item.Route)
		}
	}
}

func TestAvailableNavigationItems_Determinista(t *testing.T) {
	u := user(entity.RoleOperator, true)
	assert.Equal(t, rbac.AvailableNavigationItems(u), rbac.AvailableNavigationItems(u))
}
