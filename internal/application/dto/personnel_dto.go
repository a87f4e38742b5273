package dto

import "time"

// CreatePersonnelRequest alta de personal técnico.
type CreatePersonnelRequest struct {
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePersonnelRequest actualización de personal.
type UpdatePersonnelRequest struct {
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
}

// PersonnelResponse representación pública del personal.
type PersonnelResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	BranchID  string    `json:"branch_id,omitempty"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonnelListResponse listado paginado de personal.
type PersonnelListResponse struct {
	Items []PersonnelResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
