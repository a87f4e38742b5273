package entity

import "time"

// Branch representa una sucursal de la empresa. Tiene credencial de login propia
// (distinta de usuarios y personal); una sesión de sucursal actúa como branch_manager.
type Branch struct {
	ID           string
	CompanyID    string
	Name         string
	ManagerName  string
	Phone        string
	Email        string // credencial de login de la sucursal
	PasswordHash string
	Address      string
	City         string
	District     string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerCompany implementa access.Scoped.
func (b *Branch) OwnerCompany() string { return b.CompanyID }

// OwnerBranch implementa access.Scoped: la sucursal es su propio ámbito.
func (b *Branch) OwnerBranch() string { return b.ID }

// AssignedPersonnel implementa access.Scoped; las sucursales no tienen asignación.
func (b *Branch) AssignedPersonnel() string { return "" }
