package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/servitec-api/internal/application/auth"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

var (
	_ auth.RegistrationTxRunner = (*RegistrationTxRunner)(nil)
	_ usecase.ServiceTxRunner   = (*ServiceTxRunner)(nil)
	_ usecase.PurgeTxRunner     = (*PurgeTxRunner)(nil)
)

// RegistrationTxRunner ejecuta el alta de empresa + admin en una transacción.
type RegistrationTxRunner struct {
	pool *pgxpool.Pool
}

// NewRegistrationTxRunner construye el runner con el pool.
func NewRegistrationTxRunner(pool *pgxpool.Pool) *RegistrationTxRunner {
	return &RegistrationTxRunner{pool: pool}
}

// Run inicia la transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *RegistrationTxRunner) Run(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCompanyRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ServiceTxRunner ejecuta el upsert de cliente + alta de servicio en una transacción.
type ServiceTxRunner struct {
	pool *pgxpool.Pool
}

// NewServiceTxRunner construye el runner con el pool.
func NewServiceTxRunner(pool *pgxpool.Pool) *ServiceTxRunner {
	return &ServiceTxRunner{pool: pool}
}

// Run inicia la transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *ServiceTxRunner) Run(ctx context.Context, fn func(repository.CustomerRepository, repository.ServiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx), NewServiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PurgeTxRunner ejecuta el borrado en cascada de una empresa en una transacción.
type PurgeTxRunner struct {
	pool *pgxpool.Pool
}

// NewPurgeTxRunner construye el runner con el pool.
func NewPurgeTxRunner(pool *pgxpool.Pool) *PurgeTxRunner {
	return &PurgeTxRunner{pool: pool}
}

// Run inicia la transacción, ejecuta fn con el repo de purga atado a la tx y hace Commit o Rollback.
func (r *PurgeTxRunner) Run(ctx context.Context, fn func(repository.CompanyPurgeRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCompanyPurgeRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
