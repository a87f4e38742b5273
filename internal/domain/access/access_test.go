package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// Actores de prueba reutilizados en los casos.
var (
	superAdmin = access.Actor{Role: access.RoleSuperAdmin, UserID: "u-root"}
	companyAdm = access.Actor{Role: access.RoleCompanyAdmin, UserID: "u-1", CompanyID: "5"}
	branchMgr  = access.Actor{Role: access.RoleBranchManager, UserID: "u-2", CompanyID: "5", BranchID: "12"}
	technician = access.Actor{Role: access.RoleTechnician, UserID: "p-9", CompanyID: "5", PersonnelID: "p-9"}
)

// ──────────────────────────────────────────────────────────────────────────────
// ScopeQuery — predicado por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestScopeQuery_SuperAdmin_SinRestriccion(t *testing.T) {
	cond, args, err := access.ScopeQuery("s", superAdmin, 1)
	require.NoError(t, err)
	assert.Empty(t, cond, "super_admin no debe llevar predicado")
	assert.Empty(t, args)
}

func TestScopeQuery_CompanyAdmin_FiltraEmpresa(t *testing.T) {
	cond, args, err := access.ScopeQuery("s", companyAdm, 1)
	require.NoError(t, err)
	assert.Equal(t, "s.company_id = $1", cond)
	assert.Equal(t, []any{"5"}, args)
}

func TestScopeQuery_BranchManager_FiltraEmpresaYSucursal(t *testing.T) {
	// Caso del ejemplo de referencia: company_id=5, branch_id=12.
	cond, args, err := access.ScopeQuery("s", branchMgr, 3)
	require.NoError(t, err)
	assert.Equal(t, "s.company_id = $3 AND s.branch_id = $4", cond)
	assert.Equal(t, []any{"5", "12"}, args)
}

func TestScopeQuery_Technician_FiltraEmpresaYAsignacion(t *testing.T) {
	cond, args, err := access.ScopeQuery("s", technician, 1)
	require.NoError(t, err)
	assert.Equal(t, "s.company_id = $1 AND s.personnel_id = $2", cond)
	assert.Equal(t, []any{"5", "p-9"}, args)
}

// Un campo de alcance ausente deniega en vez de devolver un filtro degradado.
func TestScopeQuery_AlcanceIncompleto_Deniega(t *testing.T) {
	cases := []struct {
		name  string
		actor access.Actor
	}{
		{"company_admin sin company", access.Actor{Role: access.RoleCompanyAdmin}},
		{"branch_manager sin branch", access.Actor{Role: access.RoleBranchManager, CompanyID: "5"}},
		{"technician sin personnel", access.Actor{Role: access.RoleTechnician, CompanyID: "5"}},
		{"rol vacío", access.Actor{}},
		{"rol inventado", access.Actor{Role: "root", CompanyID: "5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cond, args, err := access.ScopeQuery("s", tc.actor, 1)
			assert.ErrorIs(t, err, domain.ErrForbidden)
			assert.Empty(t, cond)
			assert.Empty(t, args)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ScopeTenancy — tablas sin columna de asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestScopeTenancy_BranchManager_UsaColumnasCalificadas(t *testing.T) {
	// Para la tabla branches la columna de sucursal es el propio id.
	cond, args, err := access.ScopeTenancy("b.company_id", "b.id", branchMgr, 1)
	require.NoError(t, err)
	assert.Equal(t, "b.company_id = $1 AND b.id = $2", cond)
	assert.Equal(t, []any{"5", "12"}, args)
}

func TestScopeTenancy_Technician_Deniega(t *testing.T) {
	_, _, err := access.ScopeTenancy("c.company_id", "c.branch_id", technician, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ScopeDefinitions — asimetría de catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestScopeDefinitions_CompanyAdmin_VeTodoSuTenant(t *testing.T) {
	cond, args, err := access.ScopeDefinitions("d", companyAdm, 1)
	require.NoError(t, err)
	assert.Equal(t, "d.company_id = $1", cond)
	assert.Equal(t, []any{"5"}, args)
}

func TestScopeDefinitions_BranchManager_SoloNivelEmpresa(t *testing.T) {
	cond, args, err := access.ScopeDefinitions("d", branchMgr, 2)
	require.NoError(t, err)
	assert.Equal(t, "d.company_id = $2 AND d.branch_id IS NULL", cond)
	assert.Equal(t, []any{"5"}, args)
}

func TestScopeDefinitions_Technician_SoloNivelEmpresa(t *testing.T) {
	cond, _, err := access.ScopeDefinitions("d", technician, 1)
	require.NoError(t, err)
	assert.Contains(t, cond, "branch_id IS NULL")
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthorizeRecord — acceso directo por id
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorizeRecord_BranchManager_OtraSucursal_Deniega(t *testing.T) {
	// Ejemplo de referencia: fila de la sucursal 99 pedida por el gestor de la 12.
	svc := &entity.Service{CompanyID: "5", BranchID: "99", PersonnelID: "p-1"}
	assert.ErrorIs(t, access.AuthorizeRecord(svc, branchMgr), domain.ErrForbidden)
}

func TestAuthorizeRecord_BranchManager_SuSucursal_Permite(t *testing.T) {
	svc := &entity.Service{CompanyID: "5", BranchID: "12"}
	assert.NoError(t, access.AuthorizeRecord(svc, branchMgr))
}

func TestAuthorizeRecord_CompanyAdmin_OtraEmpresa_Deniega(t *testing.T) {
	cust := &entity.Customer{CompanyID: "7", BranchID: "12"}
	assert.ErrorIs(t, access.AuthorizeRecord(cust, companyAdm), domain.ErrForbidden)
}

func TestAuthorizeRecord_Technician_SoloSusServicios(t *testing.T) {
	mio := &entity.Service{CompanyID: "5", BranchID: "12", PersonnelID: "p-9"}
	ajeno := &entity.Service{CompanyID: "5", BranchID: "12", PersonnelID: "p-2"}
	sinAsignar := &entity.Service{CompanyID: "5", BranchID: "12"}

	assert.NoError(t, access.AuthorizeRecord(mio, technician))
	assert.ErrorIs(t, access.AuthorizeRecord(ajeno, technician), domain.ErrForbidden)
	// Sin asignación no hay forma de correlacionar: falla cerrado.
	assert.ErrorIs(t, access.AuthorizeRecord(sinAsignar, technician), domain.ErrForbidden)
}

func TestAuthorizeRecord_SuperAdmin_TodoPermitido(t *testing.T) {
	svc := &entity.Service{CompanyID: "7", BranchID: "99", PersonnelID: "p-1"}
	assert.NoError(t, access.AuthorizeRecord(svc, superAdmin))
}

func TestAuthorizeRecord_RecNil_Deniega(t *testing.T) {
	assert.ErrorIs(t, access.AuthorizeRecord(nil, superAdmin), domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthorizeDefinition — acceso directo a catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorizeDefinition_BranchManager_DefinicionDeSucursal_Deniega(t *testing.T) {
	// Ni siquiera la de su propia sucursal: los catálogos de sucursal solo los
	// gestiona company_admin. Aplicar la regla amplia aquí filtraría catálogos
	// de otras sucursales en los listados.
	propia := &entity.Definition{CompanyID: "5", BranchID: "12", Kind: entity.DefinitionModels}
	otra := &entity.Definition{CompanyID: "5", BranchID: "99", Kind: entity.DefinitionModels}
	empresa := &entity.Definition{CompanyID: "5", Kind: entity.DefinitionModels}

	assert.ErrorIs(t, access.AuthorizeDefinition(propia, branchMgr), domain.ErrForbidden)
	assert.ErrorIs(t, access.AuthorizeDefinition(otra, branchMgr), domain.ErrForbidden)
	assert.NoError(t, access.AuthorizeDefinition(empresa, branchMgr))
}

func TestAuthorizeDefinition_CompanyAdmin_VeSucursales(t *testing.T) {
	deSucursal := &entity.Definition{CompanyID: "5", BranchID: "12", Kind: entity.DefinitionBrands}
	assert.NoError(t, access.AuthorizeDefinition(deSucursal, companyAdm))

	ajena := &entity.Definition{CompanyID: "7", Kind: entity.DefinitionBrands}
	assert.ErrorIs(t, access.AuthorizeDefinition(ajena, companyAdm), domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseRole
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRole(t *testing.T) {
	for _, s := range []string{"super_admin", "company_admin", "branch_manager", "technician"} {
		r, err := access.ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, access.Role(s), r)
	}
	_, err := access.ParseRole("admin")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
