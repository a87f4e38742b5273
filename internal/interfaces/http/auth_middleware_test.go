package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	apphttp "github.com/jhoicas/servitec-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/servitec-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testBranchID  = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "servitec-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el Actor en locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...access.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": string(apphttp.GetActor(c).Role),
			})
		},
	)
	return app
}

// subjectForRole arma un Subject con el alcance mínimo que el rol exige.
func subjectForRole(role string) pkgjwt.Subject {
	sub := pkgjwt.Subject{
		AccountID: testUserID,
		Kind:      pkgjwt.KindUser,
		Role:      role,
	}
	switch role {
	case "super_admin":
		// sin tenant
	case "company_admin":
		sub.CompanyID = testCompanyID
	case "branch_manager":
		sub.Kind = pkgjwt.KindBranch
		sub.CompanyID = testCompanyID
		sub.BranchID = testBranchID
	case "technician":
		sub.Kind = pkgjwt.KindPersonnel
		sub.CompanyID = testCompanyID
		sub.BranchID = testBranchID
		sub.PersonnelID = testUserID
	}
	return sub
}

// tokenForRole genera un JWT con el rol indicado y alcance completo.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, subjectForRole(role), testIssuer, testExpMin)
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

// Caso 1: El actor tiene el rol requerido, debe pasar (HTTP 200).
func TestRequireRole_SuperAdminAccedeRutaSuperAdmin(t *testing.T) {
	app := buildTestApp(access.RoleSuperAdmin)
	resp := doRequest(t, app, tokenForRole(t, "super_admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"super_admin debe poder acceder a ruta restringida a super_admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "super_admin", body["role"])
}

// Caso 1b: El actor tiene uno de los roles permitidos (multi-rol), HTTP 200.
func TestRequireRole_GestorAccedeRutaAdminOGestor(t *testing.T) {
	app := buildTestApp(access.RoleCompanyAdmin, access.RoleBranchManager)
	resp := doRequest(t, app, tokenForRole(t, "branch_manager"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"branch_manager debe poder acceder a ruta que permite admin o gestor")
}

// Caso 2: Rol distinto al requerido, HTTP 403 Forbidden.
func TestRequireRole_TecnicoBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(access.RoleCompanyAdmin)
	resp := doRequest(t, app, tokenForRole(t, "technician"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"technician no debe poder acceder a ruta restringida a company_admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: Token con rol desconocido, HTTP 401 MISSING_ROLE.
func TestRequireRole_RolDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp(access.RoleCompanyAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		AccountID: testUserID,
		Kind:      pkgjwt.KindUser,
		Role:      "gerente",
		CompanyID: testCompanyID,
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"rol desconocido debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Caso 4: Sin header Authorization, HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(access.RoleCompanyAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado, HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(access.RoleCompanyAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: Token con rol válido pero alcance incompleto (company_admin sin
// company_id), HTTP 401 INVALID_SCOPE. El middleware falla cerrado.
func TestAuthMiddleware_AlcanceIncompleto_Retorna401(t *testing.T) {
	app := buildTestApp(access.RoleCompanyAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		AccountID: testUserID,
		Kind:      pkgjwt.KindUser,
		Role:      "company_admin",
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_SCOPE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción del Actor desde el token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeActorCompleto(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		actor := apphttp.GetActor(c)
		return c.JSON(fiber.Map{
			"user_id":    actor.UserID,
			"company_id": actor.CompanyID,
			"branch_id":  actor.BranchID,
			"role":       string(actor.Role),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "branch_manager"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, testBranchID, body["branch_id"])
	assert.Equal(t, "branch_manager", body["role"])
}

// GetActor fuera del middleware devuelve el Actor cero, que no pasa ningún filtro.
func TestGetActor_SinMiddleware_ActorCero(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		actor := apphttp.GetActor(c)
		assert.Error(t, actor.Validate(), "el Actor cero debe fallar la validación")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSubscription
// ──────────────────────────────────────────────────────────────────────────────

type fakeChecker struct {
	active bool
	err    error
	calls  []string
}

func (f *fakeChecker) HasActiveSubscription(_ context.Context, companyID string) (bool, error) {
	f.calls = append(f.calls, companyID)
	return f.active, f.err
}

func buildSubscriptionApp(checker *fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireSubscription(checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireSubscription_Vigente_Pasa(t *testing.T) {
	checker := &fakeChecker{active: true}
	app := buildSubscriptionApp(checker)

	resp := doRequest(t, app, tokenForRole(t, "company_admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, checker.calls, 1)
	assert.Equal(t, testCompanyID, checker.calls[0],
		"debe consultarse la empresa del token")
}

func TestRequireSubscription_Vencida_Retorna403(t *testing.T) {
	checker := &fakeChecker{active: false}
	app := buildSubscriptionApp(checker)

	resp := doRequest(t, app, tokenForRole(t, "technician"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SUBSCRIPTION_EXPIRED")
}

func TestRequireSubscription_SuperAdminPasaSinConsulta(t *testing.T) {
	checker := &fakeChecker{active: false}
	app := buildSubscriptionApp(checker)

	resp := doRequest(t, app, tokenForRole(t, "super_admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"super_admin pasa aunque no haya suscripción que verificar")
	assert.Empty(t, checker.calls, "no debe consultarse la DB para super_admin")
}

func TestRequireSubscription_FalloDeConsulta_Retorna503(t *testing.T) {
	checker := &fakeChecker{err: errors.New("db caída")}
	app := buildSubscriptionApp(checker)

	resp := doRequest(t, app, tokenForRole(t, "company_admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SUBSCRIPTION_CHECK_FAILED")
}
