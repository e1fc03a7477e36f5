package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	apphttp "github.com/jhoicas/Nomina-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Nomina-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "nomina-api-test"
	testExpMin    = 60
)

// bearer genera un header Authorization válido para userID.
func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func buildMeApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetTokenRole(c),
		})
	})
	return app
}

func doMe(t *testing.T, app *fiber.App, target, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	resp := doMe(t, buildMeApp(), "/me", bearer(t, "u-1", "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestAuthMiddleware_TokenEnQuery(t *testing.T) {
	header := bearer(t, "u-2", "OPERATOR")
	resp := doMe(t, buildMeApp(), "/me?access_token="+header[len("Bearer "):], "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, "u-1", "ADMIN", testIssuer, -1)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret", "u-1", "ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"formato inválido", "Token abc", "MISSING_TOKEN"},
		{"bearer vacío", "Bearer  ", "MISSING_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"secret incorrecto", "Bearer " + otherSecret, "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doMe(t, buildMeApp(), "/me", tt.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.code)
		})
	}
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	revocations := auth.NewRevocations()
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, revocations), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetUserID(c))
	})

	header := bearer(t, "u-1", "ADMIN")
	claims, err := pkgjwt.ParseClaims(testJWTSecret, header[len("Bearer "):])
	require.NoError(t, err)

	resp := doMe(t, app, "/me", header)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	revocations.Revoke(claims.ID, claims.ExpiresAt.Time)

	resp = doMe(t, app, "/me", header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")

	other := doMe(t, app, "/me", bearer(t, "u-1", "ADMIN"))
	defer other.Body.Close()
	assert.Equal(t, http.StatusOK, other.StatusCode, "solo se revoca el token cerrado")
}
