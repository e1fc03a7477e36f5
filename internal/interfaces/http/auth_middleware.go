package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID    = "user_id"
	LocalTokenRole = "token_role"
	LocalTokenID   = "token_id"
	LocalTokenExp  = "token_exp"
	LocalSession   = "session"
)

// TokenRevocations tokens cerrados por logout (auth.Revocations).
type TokenRevocations interface {
	Revoke(jti string, until time.Time)
	Revoked(jti string) bool
}

// AuthMiddleware valida el Bearer Token JWT y deja UserID (y el rol del token) en c.Locals.
// El rol del token es informativo: la autorización usa la sesión (RequireRoute).
// Un token revocado por logout se rechaza igual que uno inválido.
func AuthMiddleware(jwtSecret string, revocations TokenRevocations) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization: Bearer <token> requerido"})
		}
		claims, err := jwt.ParseClaims(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revocations != nil && revocations.Revoked(claims.ID) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "la sesión de este token fue cerrada"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalTokenRole, claims.Role)
		c.Locals(LocalTokenID, claims.ID)
		c.Locals(LocalTokenExp, claims.ExpiresAt.Time)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization. Los navegadores no
// pueden poner headers en EventSource, así que se acepta también ?access_token=.
func bearerToken(c *fiber.Ctx) (string, bool) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		tok := strings.TrimSpace(parts[1])
		return tok, tok != ""
	}
	tok := strings.TrimSpace(c.Query("access_token"))
	return tok, tok != ""
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetTokenRole rol declarado en el token.
func GetTokenRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTokenRole).(string)
	return s
}

// tokenID jti y exp del token de la petición.
func tokenID(c *fiber.Ctx) (string, time.Time) {
	jti, _ := c.Locals(LocalTokenID).(string)
	exp, _ := c.Locals(LocalTokenExp).(time.Time)
	return jti, exp
}
