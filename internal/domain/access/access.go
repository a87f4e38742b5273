// Package access centraliza el filtro de autorización por rol: el mismo
// predicado se aplica a todo listado y a todo acceso directo por id, en lugar
// de repetir el mapeo rol→filtro en cada consulta.
//
// Reglas por rol para entidades con company_id/branch_id/personnel_id:
//
//	super_admin    → todas las filas, todas las empresas
//	company_admin  → company_id = actor.CompanyID
//	branch_manager → company_id = actor.CompanyID AND branch_id = actor.BranchID
//	technician     → company_id = actor.CompanyID AND personnel_id = actor.PersonnelID
//
// Los catálogos (definiciones) tienen una asimetría deliberada: branch_manager
// y technician solo ven definiciones a nivel empresa (branch_id IS NULL);
// company_admin ve también las de cada sucursal. Ver ScopeDefinitions.
//
// Todo falla cerrado: un campo de alcance ausente deniega en vez de degradar
// a "todas las filas" (no se confía en que NULL nunca iguale a NULL en SQL).
package access

import (
	"fmt"

	"github.com/jhoicas/servitec-api/internal/domain"
)

// Role es el rol del actor autenticado.
type Role string

// Roles reconocidos por el filtro.
const (
	RoleSuperAdmin    Role = "super_admin"
	RoleCompanyAdmin  Role = "company_admin"
	RoleBranchManager Role = "branch_manager"
	RoleTechnician    Role = "technician"
)

// ParseRole valida el string de rol (p. ej. el claim del JWT).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleBranchManager, RoleTechnician:
		return Role(s), nil
	}
	return "", fmt.Errorf("rol desconocido %q: %w", s, domain.ErrForbidden)
}

// Actor es el contexto de autorización explícito que viaja con cada consulta.
// Se construye una vez por petición desde el token; ninguna capa lee estado
// ambiental de sesión.
type Actor struct {
	Role        Role
	UserID      string // id de la cuenta (users, branches o personnel según el login)
	CompanyID   string
	BranchID    string
	PersonnelID string // identidad canónica del técnico, resuelta en el login
}

// Validate verifica que el actor tenga los campos de alcance que su rol exige.
// Falla cerrado: la ausencia de un campo requerido deniega todo acceso.
func (a Actor) Validate() error {
	switch a.Role {
	case RoleSuperAdmin:
		return nil
	case RoleCompanyAdmin:
		if a.CompanyID == "" {
			return fmt.Errorf("company_admin sin company_id: %w", domain.ErrForbidden)
		}
		return nil
	case RoleBranchManager:
		if a.CompanyID == "" || a.BranchID == "" {
			return fmt.Errorf("branch_manager sin alcance completo: %w", domain.ErrForbidden)
		}
		return nil
	case RoleTechnician:
		if a.CompanyID == "" || a.PersonnelID == "" {
			return fmt.Errorf("technician sin alcance completo: %w", domain.ErrForbidden)
		}
		return nil
	}
	return fmt.Errorf("rol desconocido %q: %w", a.Role, domain.ErrForbidden)
}

// ScopeQuery devuelve el predicado SQL del rol para una tabla con columnas
// company_id, branch_id y personnel_id bajo alias, usando parámetros
// posicionales desde argPos. Para super_admin devuelve cadena vacía (sin
// restricción). Transformación pura: el llamador lo añade a su WHERE.
func ScopeQuery(alias string, actor Actor, argPos int) (string, []any, error) {
	if err := actor.Validate(); err != nil {
		return "", nil, err
	}
	switch actor.Role {
	case RoleSuperAdmin:
		return "", nil, nil
	case RoleCompanyAdmin:
		return fmt.Sprintf("%s.company_id = $%d", alias, argPos),
			[]any{actor.CompanyID}, nil
	case RoleBranchManager:
		return fmt.Sprintf("%s.company_id = $%d AND %s.branch_id = $%d", alias, argPos, alias, argPos+1),
			[]any{actor.CompanyID, actor.BranchID}, nil
	case RoleTechnician:
		return fmt.Sprintf("%s.company_id = $%d AND %s.personnel_id = $%d", alias, argPos, alias, argPos+1),
			[]any{actor.CompanyID, actor.PersonnelID}, nil
	}
	return "", nil, fmt.Errorf("rol desconocido %q: %w", actor.Role, domain.ErrForbidden)
}

// ScopeTenancy es la variante para tablas sin columna de asignación
// (sucursales, personal, clientes). companyCol y branchCol son las columnas
// calificadas (p. ej. "b.company_id", "b.id"). Los técnicos no listan estas
// entidades directamente, así que el rol technician deniega.
func ScopeTenancy(companyCol, branchCol string, actor Actor, argPos int) (string, []any, error) {
	if err := actor.Validate(); err != nil {
		return "", nil, err
	}
	switch actor.Role {
	case RoleSuperAdmin:
		return "", nil, nil
	case RoleCompanyAdmin:
		return fmt.Sprintf("%s = $%d", companyCol, argPos), []any{actor.CompanyID}, nil
	case RoleBranchManager:
		return fmt.Sprintf("%s = $%d AND %s = $%d", companyCol, argPos, branchCol, argPos+1),
			[]any{actor.CompanyID, actor.BranchID}, nil
	case RoleTechnician:
		return "", nil, fmt.Errorf("technician no lista esta entidad: %w", domain.ErrForbidden)
	}
	return "", nil, fmt.Errorf("rol desconocido %q: %w", actor.Role, domain.ErrForbidden)
}

// ScopeDefinitions devuelve el predicado para catálogos (devices, brands,
// models, complaints, operations) bajo alias. Asimetría deliberada: los
// catálogos a nivel empresa se comparten hacia abajo, los de sucursal no se
// comparten hacia arriba ni hacia otras sucursales.
func ScopeDefinitions(alias string, actor Actor, argPos int) (string, []any, error) {
	if err := actor.Validate(); err != nil {
		return "", nil, err
	}
	switch actor.Role {
	case RoleSuperAdmin:
		return "", nil, nil
	case RoleCompanyAdmin:
		return fmt.Sprintf("%s.company_id = $%d", alias, argPos),
			[]any{actor.CompanyID}, nil
	case RoleBranchManager, RoleTechnician:
		return fmt.Sprintf("%s.company_id = $%d AND %s.branch_id IS NULL", alias, argPos, alias),
			[]any{actor.CompanyID}, nil
	}
	return "", nil, fmt.Errorf("rol desconocido %q: %w", actor.Role, domain.ErrForbidden)
}

// Scoped expone las columnas de alcance de una fila ya leída, para el chequeo
// de acceso directo por id (ver/editar un registro concreto).
type Scoped interface {
	OwnerCompany() string
	OwnerBranch() string
	AssignedPersonnel() string
}

// AuthorizeRecord decide si el actor puede acceder a la fila rec. Falla
// cerrado: cualquier campo de alcance ausente o ambiguo deniega. El rol
// technician exige que la fila esté asignada a su propio registro de personal.
func AuthorizeRecord(rec Scoped, actor Actor) error {
	if rec == nil {
		return domain.ErrForbidden
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	switch actor.Role {
	case RoleSuperAdmin:
		return nil
	case RoleCompanyAdmin:
		if rec.OwnerCompany() != actor.CompanyID {
			return domain.ErrForbidden
		}
		return nil
	case RoleBranchManager:
		if rec.OwnerCompany() != actor.CompanyID || rec.OwnerBranch() != actor.BranchID {
			return domain.ErrForbidden
		}
		return nil
	case RoleTechnician:
		if rec.OwnerCompany() != actor.CompanyID {
			return domain.ErrForbidden
		}
		if rec.AssignedPersonnel() == "" || rec.AssignedPersonnel() != actor.PersonnelID {
			return domain.ErrForbidden
		}
		return nil
	}
	return domain.ErrForbidden
}

// AuthorizeDefinition es el chequeo directo para filas de catálogo: mantiene
// la asimetría de ScopeDefinitions (branch_manager y technician solo acceden a
// definiciones de empresa, nunca a las de una sucursal, ni siquiera la propia).
func AuthorizeDefinition(rec Scoped, actor Actor) error {
	if rec == nil {
		return domain.ErrForbidden
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	switch actor.Role {
	case RoleSuperAdmin:
		return nil
	case RoleCompanyAdmin:
		if rec.OwnerCompany() != actor.CompanyID {
			return domain.ErrForbidden
		}
		return nil
	case RoleBranchManager, RoleTechnician:
		if rec.OwnerCompany() != actor.CompanyID || rec.OwnerBranch() != "" {
			return domain.ErrForbidden
		}
		return nil
	}
	return domain.ErrForbidden
}
