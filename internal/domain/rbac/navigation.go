package rbac

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// NavigationItem entrada del menú de navegación. Valor inmutable.
type NavigationItem struct {
	Route        string      `json:"route"`
	Title        string      `json:"title"`
	Icon         string      `json:"icon"`
	Permission   Permission  `json:"permission,omitempty"`    // vacío = cualquier usuario activo
	RequiredRole entity.Role `json:"required_role,omitempty"` // vacío = cualquier rol
}

var navigationCatalog = []NavigationItem{
	{Route: RouteHome, Title: "Inicio", Icon: "home"},
	{Route: RouteEmployees, Title: "Empleados", Icon: "people"},
	{Route: RoutePayments, Title: "Pagos", Icon: "payments", Permission: PermRegisterPayments},
	{Route: RouteDiscounts, Title: "Descuentos", Icon: "remove_circle", Permission: PermRegisterDiscounts},
	{Route: RouteAdvances, Title: "Adelantos", Icon: "request_quote", Permission: PermRegisterAdvances},
	{Route: RouteStatistics, Title: "Estadísticas", Icon: "bar_chart", Permission: PermViewStatistics},
	{Route: RouteUsers, Title: "Usuarios", Icon: "admin_panel_settings", Permission: PermManageUsers, RequiredRole: entity.RoleAdmin},
	{Route: RouteProfile, Title: "Perfil", Icon: "person"},
}

// NavigationCatalog devuelve una copia del catálogo completo en orden declarado.
func NavigationCatalog() []NavigationItem {
	out := make([]NavigationItem, len(navigationCatalog))
	copy(out, navigationCatalog)
	return out
}

// AvailableNavigationItems filtra el catálogo según los permisos del usuario.
// El orden es siempre el del catálogo; usuario nil o inactivo recibe un menú vacío.
func AvailableNavigationItems(user *entity.User) []NavigationItem {
	out := []NavigationItem{}
	if user == nil || !user.IsActive {
		return out
	}
	for _, item := range navigationCatalog {
		if item.RequiredRole != "" && item.RequiredRole != user.Role {
			continue
		}
		if item.Permission != "" && !HasPermission(user, item.Permission) {
			continue
		}
		out = append(out, item)
	}
	return out
}
