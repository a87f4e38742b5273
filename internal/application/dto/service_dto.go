package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest alta de servicio. Los datos del cliente van embebidos:
// si ya existe un cliente con ese teléfono en la empresa se actualizan su
// nombre y dirección en vez de duplicarlo (upsert), todo en una transacción.
type CreateServiceRequest struct {
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	CustomerAddress  string          `json:"customer_address"`
	CustomerCity     string          `json:"customer_city"`
	CustomerDistrict string          `json:"customer_district"`
	BranchID         string          `json:"branch_id"`
	PersonnelID      string          `json:"personnel_id,omitempty"`
	DeviceID         string          `json:"device_id,omitempty"`
	BrandID          string          `json:"brand_id,omitempty"`
	ModelID          string          `json:"model_id,omitempty"`
	ComplaintID      string          `json:"complaint_id,omitempty"`
	OperationID      string          `json:"operation_id,omitempty"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Warranty         bool            `json:"warranty"`
	ServiceDate      *time.Time      `json:"service_date,omitempty"`
}

// UpdateServiceRequest actualización de servicio.
type UpdateServiceRequest struct {
	PersonnelID string          `json:"personnel_id,omitempty"`
	DeviceID    string          `json:"device_id,omitempty"`
	BrandID     string          `json:"brand_id,omitempty"`
	ModelID     string          `json:"model_id,omitempty"`
	ComplaintID string          `json:"complaint_id,omitempty"`
	OperationID string          `json:"operation_id,omitempty"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Warranty    bool            `json:"warranty"`
}

// AssignServiceRequest asigna o reasigna el técnico del servicio.
type AssignServiceRequest struct {
	PersonnelID string `json:"personnel_id"`
}

// ServiceSearchRequest filtros del listado (query string).
type ServiceSearchRequest struct {
	Search      string `query:"search"`
	Status      string `query:"status"`
	PersonnelID string `query:"personnel"`
	DateFrom    string `query:"date_from"` // YYYY-MM-DD
	DateTo      string `query:"date_to"`
	PageRequest
}

// ServiceResponse representación pública de un servicio.
type ServiceResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	BranchID    string          `json:"branch_id"`
	CustomerID  string          `json:"customer_id"`
	PersonnelID string          `json:"personnel_id,omitempty"`
	DeviceID    string          `json:"device_id,omitempty"`
	BrandID     string          `json:"brand_id,omitempty"`
	ModelID     string          `json:"model_id,omitempty"`
	ComplaintID string          `json:"complaint_id,omitempty"`
	OperationID string          `json:"operation_id,omitempty"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Warranty    bool            `json:"warranty"`
	ServiceDate time.Time       `json:"service_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ServiceListResponse listado paginado de servicios.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
