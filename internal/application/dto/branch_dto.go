package dto

import "time"

// CreateBranchRequest alta de sucursal (incluye su credencial propia).
type CreateBranchRequest struct {
	Name        string `json:"name"`
	ManagerName string `json:"manager_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	City        string `json:"city"`
	District    string `json:"district"`
}

// UpdateBranchRequest actualización de sucursal (la credencial va aparte).
type UpdateBranchRequest struct {
	Name        string `json:"name"`
	ManagerName string `json:"manager_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	District    string `json:"district"`
	Status      string `json:"status"`
}

// ResetBranchPasswordRequest reemplaza la credencial de la sucursal.
type ResetBranchPasswordRequest struct {
	Password string `json:"password"`
}

// BranchResponse representación pública de una sucursal.
type BranchResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	ManagerName string    `json:"manager_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	District    string    `json:"district"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BranchListResponse listado paginado de sucursales.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
