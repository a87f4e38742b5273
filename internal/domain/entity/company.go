package entity

import "time"

// Company representa una empresa de servicio técnico (tenant raíz del sistema).
// Tiene su propia credencial de acceso además de las de usuarios, sucursales y personal,
// y una ventana de suscripción que condiciona todos los logins del tenant.
type Company struct {
	ID               string
	Name             string
	TaxNumber        string // NIT / número fiscal, único
	Address          string
	City             string
	District         string
	Phone            string
	Email            string
	PasswordHash     string    // bcrypt, credencial propia de la empresa
	ServiceStartDate time.Time // inicio de vigencia de la suscripción
	ServiceEndDate   time.Time // fin de vigencia; fuera del rango no se permite login
	Status           string    // active, suspended, inactive
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SubscriptionActiveAt indica si la ventana de suscripción cubre el instante dado.
func (c *Company) SubscriptionActiveAt(t time.Time) bool {
	if c.ServiceStartDate.IsZero() || c.ServiceEndDate.IsZero() {
		return false
	}
	return !t.Before(c.ServiceStartDate) && !t.After(c.ServiceEndDate)
}
