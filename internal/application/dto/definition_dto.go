package dto

import "time"

// SaveDefinitionRequest alta/edición de una entrada de catálogo. BranchID solo
// lo puede fijar company_admin (catálogo propio de una sucursal).
type SaveDefinitionRequest struct {
	Name     string `json:"name"`
	BranchID string `json:"branch_id,omitempty"`
}

// DefinitionResponse representación pública de una entrada de catálogo.
type DefinitionResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	BranchID  string    `json:"branch_id,omitempty"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
