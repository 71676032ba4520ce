package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/internal/infrastructure/authz"
	apphttp "github.com/jhoicas/venue-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/venue-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testVenueID   = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "venue-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission con la matriz real de roles
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, action string) *fiber.App {
	t.Helper()
	matrix, err := authz.NewMatrix()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(matrix, action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testVenueID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_AdminHeredaTodo(t *testing.T) {
	app := buildTestApp(t, entity.PermSessionStepUpdate)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin hereda los permisos de staff")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequirePermission_SupervisorCreaSesion(t *testing.T) {
	app := buildTestApp(t, entity.PermSessionCreate)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleSupervisor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_StaffBloqueadoEnPurga(t *testing.T) {
	app := buildTestApp(t, entity.PermAuditPurge)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), entity.PermAuditPurge, "el mensaje nombra la acción denegada")
}

func TestRequirePermission_ManagerSinSecurityRead(t *testing.T) {
	app := buildTestApp(t, entity.PermSecurityRead)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequirePermission_RolDesconocido(t *testing.T) {
	app := buildTestApp(t, entity.PermCatalogRead)
	resp := doRequest(t, app, tokenForRole(t, "bodeguero"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un rol desconocido no tiene permisos")
}

func TestRequirePermission_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.PermCatalogRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testVenueID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.PermCatalogRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.PermCatalogRead)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.PermCatalogRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testVenueID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Token "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"venue_id": apphttp.GetVenueID(c),
			"role":     apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleManager))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testVenueID, body["venue_id"])
	assert.Equal(t, entity.RoleManager, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequestTimeout
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestTimeout_FijaDeadline(t *testing.T) {
	app := fiber.New()
	app.Get("/slow", apphttp.RequestTimeout(2*time.Second), func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"has_deadline": ok, "in_window": time.Until(deadline) <= 2*time.Second})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["has_deadline"])
	assert.True(t, body["in_window"])
}
