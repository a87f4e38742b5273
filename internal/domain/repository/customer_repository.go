package repository

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByCompanyAndPhone es la clave del upsert del flujo de servicios: el
// teléfono identifica al cliente solo dentro de su empresa.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndPhone(ctx context.Context, companyID, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, actor access.Actor, search string, limit, offset int) ([]*entity.Customer, int, error)
}
