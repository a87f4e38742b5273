package dto

import "time"

// UpdateCompanyRequest actualización de datos de la empresa.
type UpdateCompanyRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// ExtendSubscriptionRequest ajusta la ventana de suscripción (solo super_admin).
type ExtendSubscriptionRequest struct {
	ServiceStartDate time.Time `json:"service_start_date"`
	ServiceEndDate   time.Time `json:"service_end_date"`
}

// CompanyResponse representación pública de una empresa (sin hash).
type CompanyResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TaxNumber        string    `json:"tax_number"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	District         string    `json:"district"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	ServiceStartDate time.Time `json:"service_start_date"`
	ServiceEndDate   time.Time `json:"service_end_date"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
