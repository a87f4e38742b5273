package entity

import "time"

// Customer representa un cliente de la empresa. Se crea o actualiza (upsert por
// teléfono dentro de la empresa) desde el flujo de creación de servicios; dos
// empresas pueden tener clientes con el mismo teléfono sin interferirse.
type Customer struct {
	ID        string
	CompanyID string
	BranchID  string // vacío si se registró a nivel empresa
	Name      string
	Phone     string // clave de upsert dentro de la empresa
	Address   string
	City      string
	District  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerCompany implementa access.Scoped.
func (c *Customer) OwnerCompany() string { return c.CompanyID }

// OwnerBranch implementa access.Scoped.
func (c *Customer) OwnerBranch() string { return c.BranchID }

// AssignedPersonnel implementa access.Scoped; los clientes no tienen técnico asignado directo.
func (c *Customer) AssignedPersonnel() string { return "" }
