package dto

import "time"

// RegisterCompanyRequest alta de empresa con su usuario company_admin inicial.
type RegisterCompanyRequest struct {
	CompanyName     string `json:"company_name"`
	TaxNumber       string `json:"tax_number"`
	Address         string `json:"address"`
	City            string `json:"city"`
	District        string `json:"district"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	CompanyPassword string `json:"company_password"`
	AdminName       string `json:"admin_name"`
	AdminEmail      string `json:"admin_email"`
	AdminPassword   string `json:"admin_password"`
}

// RegisterCompanyResponse resultado del alta.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
}

// LoginRequest inicio de sesión. Kind selecciona el espacio de credenciales:
// "user" (cuentas administrativas), "branch" (sucursal) o "personnel" (técnico).
type LoginRequest struct {
	Kind     string `json:"kind"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido más el perfil del actor.
type LoginResponse struct {
	Token       string    `json:"token"`
	Kind        string    `json:"kind"`
	Role        string    `json:"role"`
	AccountID   string    `json:"account_id"`
	Name        string    `json:"name"`
	CompanyID   string    `json:"company_id,omitempty"`
	BranchID    string    `json:"branch_id,omitempty"`
	PersonnelID string    `json:"personnel_id,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}
