package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
)

// AuthHandler maneja login y logout. El login abre la sesión en el Registry;
// el logout la cierra y revoca el token usado.
type AuthHandler struct {
	uc          *auth.AuthUseCase
	sessions    *Sessions
	revocations TokenRevocations
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sessions *Sessions, revocations TokenRevocations) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, revocations: revocations}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		return writeError(c, err)
	}
	holder, _ := h.sessions.Start(c.UserContext(), out.User.ID)
	out.Session = toSessionResponse(holder.Snapshot())
	return c.JSON(out)
}

// Logout cierra la sesión del usuario en el servidor. POST /api/auth/logout
// El token queda revocado hasta su exp, así que no puede reabrir la sesión.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	jti, exp := tokenID(c)
	h.revocations.Revoke(jti, exp)
	h.sessions.End(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
