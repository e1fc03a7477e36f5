package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/navigation"
	"github.com/jhoicas/Nomina-api/internal/application/session"
)

// RequireRoute autoriza la petición con la misma regla que el menú: la ruta de
// navegación debe estar permitida para el usuario de la sesión.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 NO_SESSION      → no hay usuario cargado (carga fallida o expirada).
//   - 403 FORBIDDEN_ROUTE → usuario cargado sin permiso o inactivo.
func RequireRoute(sessions *Sessions, route string) fiber.Handler {
	return RequireRouteFunc(sessions, func(*fiber.Ctx) string { return route })
}

// RequireRouteFunc como RequireRoute, con la ruta calculada por petición
// (p. ej. "employee_detail/" + :id).
func RequireRouteFunc(sessions *Sessions, routeOf func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return noSession(c)
		}
		holder := sessions.Resolve(c.UserContext(), userID)
		route := routeOf(c)

		return navigation.NewGate(holder).Guard(route,
			func() error {
				c.Locals(LocalSession, holder)
				return c.Next()
			},
			func() error {
				if !holder.Snapshot().Loaded() {
					return noSession(c)
				}
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "FORBIDDEN_ROUTE",
					Message: "no tiene acceso a '" + route + "'",
				})
			},
		)
	}
}

// RequireSession exige un usuario cargado, sin evaluar ruta (endpoints /api/session).
func RequireSession(sessions *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return noSession(c)
		}
		c.Locals(LocalSession, sessions.Resolve(c.UserContext(), userID))
		return c.Next()
	}
}

// GetSession Holder resuelto por RequireRoute / RequireSession.
func GetSession(c *fiber.Ctx) *session.Holder {
	h, _ := c.Locals(LocalSession).(*session.Holder)
	return h
}

// actorID usuario cargado en la sesión (quien registra la operación).
func actorID(c *fiber.Ctx) string {
	if h := GetSession(c); h != nil {
		if u := h.CurrentUser(); u != nil {
			return u.ID
		}
	}
	return GetUserID(c)
}

func noSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code:    "NO_SESSION",
		Message: "no hay una sesión activa",
	})
}
