package entity

import "time"

// Personnel representa personal técnico de la empresa. Tiene credencial de login
// propia; una sesión de personal actúa como technician y su identidad canónica
// es el id de esta fila (resuelto en el login, nunca por email en los filtros).
type Personnel struct {
	ID           string
	CompanyID    string
	BranchID     string // vacío si no está asignado a una sucursal
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerCompany implementa access.Scoped.
func (p *Personnel) OwnerCompany() string { return p.CompanyID }

// OwnerBranch implementa access.Scoped.
func (p *Personnel) OwnerBranch() string { return p.BranchID }

// AssignedPersonnel implementa access.Scoped: el registro pertenece al propio técnico.
func (p *Personnel) AssignedPersonnel() string { return p.ID }
