package dto

// NavigationItemDTO entrada del menú.
type NavigationItemDTO struct {
	Route        string `json:"route"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	Permission   string `json:"permission,omitempty"`
	RequiredRole string `json:"required_role,omitempty"`
}

// SessionResponse estado de la sesión del usuario autenticado.
type SessionResponse struct {
	State       string              `json:"state"` // uninitialized, loading, loaded, unloaded
	Version     uint64              `json:"version"`
	Message     string              `json:"message,omitempty"`
	User        *UserResponse       `json:"user,omitempty"`
	Permissions []string            `json:"permissions"`
	Menu        []NavigationItemDTO `json:"menu"`
}

// GuardResponse decisión de GET /api/session/guard.
type GuardResponse struct {
	Route   string `json:"route"`
	Allowed bool   `json:"allowed"`
}
