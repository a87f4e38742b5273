package entity

import "time"

// User representa una cuenta administrativa. super_admin no pertenece a ninguna
// empresa; company_admin y branch_manager pertenecen a una (y el segundo a una sucursal).
type User struct {
	ID           string
	CompanyID    string // vacío solo para super_admin
	BranchID     string // vacío salvo branch_manager
	Name         string
	Email        string
	PasswordHash string
	Role         string // super_admin, company_admin, branch_manager
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerCompany implementa access.Scoped.
func (u *User) OwnerCompany() string { return u.CompanyID }

// OwnerBranch implementa access.Scoped.
func (u *User) OwnerBranch() string { return u.BranchID }

// AssignedPersonnel implementa access.Scoped; los usuarios no son personal técnico.
func (u *User) AssignedPersonnel() string { return "" }
