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

	"github.com/jhoicas/gestion-bodegas/internal/application/access"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	apphttp "github.com/jhoicas/gestion-bodegas/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gestion-bodegas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "ana"
	testIssuer    = "gestion-bodegas-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - el middleware de autorización indicado
//   - un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(authz fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		authz,
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":  true,
				"rol": apphttp.GetRol(c),
			})
		},
	)
	return app
}

// tokenForRol genera un JWT con el rol indicado.
func tokenForRol(t *testing.T, rol string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, rol, testIssuer, testExpMin)
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
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, tokenForRol(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["rol"])
}

func TestRequireRole_EncargadoAccedeRutaAdminOEncargado(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin, entity.RolEncargado))
	resp := doRequest(t, app, tokenForRol(t, "ENCARGADO"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_OperadorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, tokenForRol(t, "OPERADOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_RolEnMinusculasNoCoincide(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, tokenForRol(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "la comparación de roles es exacta")
}

func TestRequireRole_TokenSinRol_Retorna403(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, tokenForRol(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un 401 haría que el cliente cierre la sesión")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireRole_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, "ADMIN", testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de capacidades (RequireAction / RequireSection)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAction_SigueLaTablaDeCapacidades(t *testing.T) {
	tests := []struct {
		action access.Action
		rol    string
		want   int
	}{
		{access.ActionBodegaCrear, "ADMIN", http.StatusOK},
		{access.ActionBodegaCrear, "ENCARGADO", http.StatusForbidden},
		{access.ActionProductoEditar, "ENCARGADO", http.StatusOK},
		{access.ActionProductoEditar, "OPERADOR", http.StatusForbidden},
		{access.ActionMovimientoRegistrar, "OPERADOR", http.StatusForbidden},
		{access.ActionUsuarioEliminar, "ENCARGADO", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+tt.rol, func(t *testing.T) {
			app := buildTestApp(apphttp.RequireAction(tt.action))
			resp := doRequest(t, app, tokenForRol(t, tt.rol))
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequireSection_AuditoriaNoVisibleParaOperador(t *testing.T) {
	app := buildTestApp(apphttp.RequireSection(access.SectionAuditoria))

	resp := doRequest(t, app, tokenForRol(t, "ENCARGADO"))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, tokenForRol(t, "OPERADOR"))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"username": apphttp.GetUsername(c),
			"rol":      apphttp.GetRol(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRol(t, "ENCARGADO"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUsername, body["username"])
	assert.Equal(t, "ENCARGADO", body["rol"])
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUsername, "ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(apphttp.RequireRole(entity.RolAdmin))
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
