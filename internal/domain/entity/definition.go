package entity

import "time"

// Tipos de definición (catálogos del taller). Cada tipo vive en su propia tabla.
const (
	DefinitionDevices    = "devices"
	DefinitionBrands     = "brands"
	DefinitionModels     = "models"
	DefinitionComplaints = "complaints"
	DefinitionOperations = "operations"
)

// ValidDefinitionKind indica si kind es un catálogo conocido.
func ValidDefinitionKind(kind string) bool {
	switch kind {
	case DefinitionDevices, DefinitionBrands, DefinitionModels, DefinitionComplaints, DefinitionOperations:
		return true
	}
	return false
}

// Definition representa una entrada de catálogo (dispositivo, marca, modelo,
// avería u operación). BranchID vacío = definición a nivel empresa, compartida
// hacia abajo; con BranchID = propia de esa sucursal y no visible para otras.
type Definition struct {
	ID        string
	CompanyID string
	BranchID  string
	Kind      string // ver constantes Definition*
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerCompany implementa access.Scoped.
func (d *Definition) OwnerCompany() string { return d.CompanyID }

// OwnerBranch implementa access.Scoped.
func (d *Definition) OwnerBranch() string { return d.BranchID }

// AssignedPersonnel implementa access.Scoped; las definiciones no tienen técnico.
func (d *Definition) AssignedPersonnel() string { return "" }
