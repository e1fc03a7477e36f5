package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/navigation"
	"github.com/jhoicas/Nomina-api/internal/application/session"
	"github.com/jhoicas/Nomina-api/internal/domain/rbac"
)

const sseHeartbeat = 15 * time.Second

// SessionHandler expone el estado de sesión, el menú y las guardas de navegación.
type SessionHandler struct {
	sessions *Sessions
	streams  context.Context // se cancela en el apagado del servidor
	log      zerolog.Logger
}

// NewSessionHandler construye el handler. streams limita la vida de los flujos SSE.
func NewSessionHandler(sessions *Sessions, streams context.Context, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, streams: streams, log: log}
}

// Get godoc
// @Summary      Estado de la sesión actual
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(toSessionResponse(GetSession(c).Snapshot()))
}

// Refresh vuelve a cargar el usuario desde el proveedor y devuelve el estado final.
// POST /api/session/refresh
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	holder, _ := h.sessions.Start(c.UserContext(), GetUserID(c))
	return c.JSON(toSessionResponse(holder.Snapshot()))
}

// Menu menú de navegación permitido. GET /api/session/menu
func (h *SessionHandler) Menu(c *fiber.Ctx) error {
	return c.JSON(toMenuDTO(navigation.NewGate(GetSession(c)).MenuForCurrentUser()))
}

// Permissions permisos vigentes. GET /api/session/permissions
func (h *SessionHandler) Permissions(c *fiber.Ctx) error {
	return c.JSON(toPermissionNames(navigation.NewGate(GetSession(c)).PermissionsForCurrentUser()))
}

// Guard decide una ruta de navegación. GET /api/session/guard?route=add_employee
func (h *SessionHandler) Guard(c *fiber.Ctx) error {
	route := c.Query("route")
	if route == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "route es requerido"})
	}
	respond := func(allowed bool) func() error {
		return func() error { return c.JSON(dto.GuardResponse{Route: route, Allowed: allowed}) }
	}
	return navigation.NewGate(GetSession(c)).Guard(route, respond(true), respond(false))
}

// Events flujo SSE: un evento "session" por cada transición, empezando por la actual.
// GET /api/session/events
func (h *SessionHandler) Events(c *fiber.Ctx) error {
	holder := GetSession(c)
	userID := GetUserID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(h.streams)
	views := navigation.NewGate(holder).Watch(ctx)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(sseHeartbeat)
		defer ticker.Stop()
		for {
			select {
			case v, ok := <-views:
				if !ok {
					return
				}
				if err := writeSSE(w, v); err != nil {
					h.log.Debug().Err(err).Str("user_id", userID).Msg("cliente SSE desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeSSE(w *bufio.Writer, v navigation.View) error {
	payload, err := json.Marshal(toViewDTO(v))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: session\ndata: %s\n\n", v.Version, payload); err != nil {
		return err
	}
	return w.Flush()
}

func toSessionResponse(snap session.Snapshot) dto.SessionResponse {
	view := navigation.ViewOf(snap)
	return dto.SessionResponse{
		State:       snap.State.String(),
		Version:     snap.Version,
		Message:     snap.Message,
		User:        auth.ToUserResponse(snap.User),
		Permissions: toPermissionNames(view.Permissions),
		Menu:        toMenuDTO(view.Menu),
	}
}

func toViewDTO(v navigation.View) dto.SessionResponse {
	return dto.SessionResponse{
		State:       v.State.String(),
		Version:     v.Version,
		Permissions: toPermissionNames(v.Permissions),
		Menu:        toMenuDTO(v.Menu),
	}
}

func toPermissionNames(perms []rbac.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

func toMenuDTO(items []rbac.NavigationItem) []dto.NavigationItemDTO {
	out := make([]dto.NavigationItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NavigationItemDTO{
			Route:        it.Route,
			Title:        it.Title,
			Icon:         it.Icon,
			Permission:   string(it.Permission),
			RequiredRole: string(it.RequiredRole),
		})
	}
	return out
}
