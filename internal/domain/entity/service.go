package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un servicio (ticket de campo).
const (
	ServiceStatusOpen       = "open"
	ServiceStatusInProgress = "in_progress"
	ServiceStatusCompleted  = "completed"
	ServiceStatusCancelled  = "cancelled"
)

// ValidServiceStatus indica si s es un estado conocido.
func ValidServiceStatus(s string) bool {
	switch s {
	case ServiceStatusOpen, ServiceStatusInProgress, ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

// Service representa un ticket de servicio técnico: pertenece a una empresa y una
// sucursal, referencia un cliente y opcionalmente un técnico asignado más las
// definiciones del equipo atendido.
type Service struct {
	ID          string
	CompanyID   string
	BranchID    string
	CustomerID  string
	PersonnelID string // técnico asignado; vacío si aún no se asigna
	DeviceID    string // referencias a definiciones, vacías si no aplican
	BrandID     string
	ModelID     string
	ComplaintID string
	OperationID string
	Description string
	Status      string // ver constantes ServiceStatus*
	Amount      decimal.Decimal
	Warranty    bool
	ServiceDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerCompany implementa access.Scoped.
func (s *Service) OwnerCompany() string { return s.CompanyID }

// OwnerBranch implementa access.Scoped.
func (s *Service) OwnerBranch() string { return s.BranchID }

// AssignedPersonnel implementa access.Scoped.
func (s *Service) AssignedPersonnel() string { return s.PersonnelID }
