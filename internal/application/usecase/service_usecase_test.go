package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer // por id
	updated   []string                    // ids actualizados (para verificar upsert)
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if c, ok := r.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByCompanyAndPhone(_ context.Context, companyID, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	r.updated = append(r.updated, c.ID)
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ access.Actor, _ string, _, _ int) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}

type fakeServiceRepo struct {
	services  map[string]*entity.Service
	createErr error
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*entity.Service{}}
}

func (r *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	if s, ok := r.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *entity.Service) error {
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id string) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) List(_ context.Context, _ access.Actor, _ repository.ServiceFilter) ([]*entity.Service, int, error) {
	return nil, 0, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes; si falla,
// descarta los cambios igual que haría un rollback real reconstruyendo el
// estado previo de los mapas.
type fakeTxRunner struct {
	customers *fakeCustomerRepo
	services  *fakeServiceRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.CustomerRepository, repository.ServiceRepository) error) error {
	prevCustomers := map[string]*entity.Customer{}
	for k, v := range r.customers.customers {
		cp := *v
		prevCustomers[k] = &cp
	}
	prevServices := map[string]*entity.Service{}
	for k, v := range r.services.services {
		cp := *v
		prevServices[k] = &cp
	}
	if err := fn(r.customers, r.services); err != nil {
		r.customers.customers = prevCustomers
		r.services.services = prevServices
		return err
	}
	return nil
}

func buildServiceUC() (*usecase.ServiceUseCase, *fakeCustomerRepo, *fakeServiceRepo) {
	customers := newFakeCustomerRepo()
	services := newFakeServiceRepo()
	uc := usecase.NewServiceUseCase(&fakeTxRunner{customers: customers, services: services}, services)
	return uc, customers, services
}

var (
	adminEmpresa5 = access.Actor{Role: access.RoleCompanyAdmin, UserID: "u-1", CompanyID: "5"}
	adminEmpresa7 = access.Actor{Role: access.RoleCompanyAdmin, UserID: "u-7", CompanyID: "7"}
	gestorSuc12   = access.Actor{Role: access.RoleBranchManager, UserID: "u-2", CompanyID: "5", BranchID: "12"}
	tecnicoP9     = access.Actor{Role: access.RoleTechnician, UserID: "p-9", CompanyID: "5", PersonnelID: "p-9"}
)

// ──────────────────────────────────────────────────────────────────────────────
// Create — upsert de cliente por teléfono dentro de la empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceCreate_ClienteNuevo_SeCrea(t *testing.T) {
	uc, customers, services := buildServiceUC()

	out, err := uc.Create(context.Background(), gestorSuc12, dto.CreateServiceRequest{
		CustomerName:  "Carlos Pérez",
		CustomerPhone: "3001234567",
		Description:   "no enfría",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.CustomerID)

	assert.Len(t, customers.customers, 1)
	assert.Len(t, services.services, 1)
	c := customers.customers[out.CustomerID]
	assert.Equal(t, "5", c.CompanyID)
	assert.Equal(t, "12", c.BranchID, "branch_manager fuerza su propia sucursal")
	assert.Equal(t, entity.ServiceStatusOpen, out.Status)
}

func TestServiceCreate_TelefonoExistente_ActualizaSinDuplicar(t *testing.T) {
	uc, customers, _ := buildServiceUC()
	customers.customers["c-1"] = &entity.Customer{
		ID: "c-1", CompanyID: "5", Phone: "3001234567",
		Name: "Nombre Viejo", Address: "Dirección vieja",
	}

	out, err := uc.Create(context.Background(), gestorSuc12, dto.CreateServiceRequest{
		CustomerName:    "Nombre Nuevo",
		CustomerPhone:   "3001234567",
		CustomerAddress: "Dirección nueva",
	})
	require.NoError(t, err)

	assert.Equal(t, "c-1", out.CustomerID, "debe reutilizar el cliente existente")
	assert.Len(t, customers.customers, 1, "no debe duplicar al cliente")
	assert.Equal(t, "Nombre Nuevo", customers.customers["c-1"].Name)
	assert.Equal(t, "Dirección nueva", customers.customers["c-1"].Address)
	assert.Contains(t, customers.updated, "c-1")
}

func TestServiceCreate_MismoTelefonoOtraEmpresa_NoInterfiere(t *testing.T) {
	uc, customers, _ := buildServiceUC()
	// Cliente de la empresa 7 con el mismo teléfono.
	customers.customers["c-ajeno"] = &entity.Customer{
		ID: "c-ajeno", CompanyID: "7", Phone: "3001234567", Name: "Cliente Ajeno",
	}

	out, err := uc.Create(context.Background(), gestorSuc12, dto.CreateServiceRequest{
		CustomerName:  "Cliente Propio",
		CustomerPhone: "3001234567",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "c-ajeno", out.CustomerID, "el upsert es por empresa, no global")
	assert.Len(t, customers.customers, 2)
	assert.Equal(t, "Cliente Ajeno", customers.customers["c-ajeno"].Name, "la otra empresa queda intacta")
}

func TestServiceCreate_FalloEnServicio_RevierteCliente(t *testing.T) {
	uc, customers, services := buildServiceUC()
	services.createErr = errors.New("insert service: fallo simulado")

	_, err := uc.Create(context.Background(), gestorSuc12, dto.CreateServiceRequest{
		CustomerName:  "Carlos Pérez",
		CustomerPhone: "3001234567",
	})
	require.Error(t, err)
	assert.Empty(t, customers.customers, "el upsert del cliente debe revertirse con el servicio")
	assert.Empty(t, services.services)
}

func TestServiceCreate_TecnicoNoPuedeCrear(t *testing.T) {
	uc, _, _ := buildServiceUC()
	_, err := uc.Create(context.Background(), tecnicoP9, dto.CreateServiceRequest{
		CustomerName:  "X",
		CustomerPhone: "300",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestServiceCreate_CompanyAdminSinSucursal_EntradaInvalida(t *testing.T) {
	uc, _, _ := buildServiceUC()
	_, err := uc.Create(context.Background(), adminEmpresa5, dto.CreateServiceRequest{
		CustomerName:  "X",
		CustomerPhone: "300",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "company_admin debe indicar la sucursal")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / Update — acceso directo por id
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceGetByID_OtraSucursal_Denegado(t *testing.T) {
	uc, _, services := buildServiceUC()
	services.services["s-99"] = &entity.Service{
		ID: "s-99", CompanyID: "5", BranchID: "99", CustomerID: "c-x",
	}

	// El id existe y es válido; aun así el gestor de la sucursal 12 no lo ve.
	_, err := uc.GetByID(context.Background(), gestorSuc12, "s-99")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// La empresa dueña sí.
	out, err := uc.GetByID(context.Background(), adminEmpresa5, "s-99")
	require.NoError(t, err)
	assert.Equal(t, "s-99", out.ID)

	// Otra empresa, jamás.
	_, err = uc.GetByID(context.Background(), adminEmpresa7, "s-99")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestServiceUpdate_TecnicoSoloEstadoYDescripcion(t *testing.T) {
	uc, _, services := buildServiceUC()
	services.services["s-1"] = &entity.Service{
		ID: "s-1", CompanyID: "5", BranchID: "12", PersonnelID: "p-9",
		Status: entity.ServiceStatusInProgress, DeviceID: "dev-1",
	}

	out, err := uc.Update(context.Background(), tecnicoP9, "s-1", dto.UpdateServiceRequest{
		Status:      entity.ServiceStatusCompleted,
		Description: "compresor reemplazado",
		DeviceID:    "dev-otro", // debe ignorarse para el técnico
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceStatusCompleted, out.Status)
	assert.Equal(t, "compresor reemplazado", out.Description)
	assert.Equal(t, "dev-1", out.DeviceID, "el técnico no cambia las referencias del equipo")
}

func TestServiceUpdate_TecnicoNoAsignado_Denegado(t *testing.T) {
	uc, _, services := buildServiceUC()
	services.services["s-2"] = &entity.Service{
		ID: "s-2", CompanyID: "5", BranchID: "12", PersonnelID: "p-otro",
		Status: entity.ServiceStatusOpen,
	}
	_, err := uc.Update(context.Background(), tecnicoP9, "s-2", dto.UpdateServiceRequest{
		Status: entity.ServiceStatusCompleted,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestServiceUpdate_EstadoInvalido(t *testing.T) {
	uc, _, services := buildServiceUC()
	services.services["s-1"] = &entity.Service{ID: "s-1", CompanyID: "5", BranchID: "12"}
	_, err := uc.Update(context.Background(), gestorSuc12, "s-1", dto.UpdateServiceRequest{Status: "done"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Assign
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceAssign_PasaAEnProceso(t *testing.T) {
	uc, _, services := buildServiceUC()
	services.services["s-1"] = &entity.Service{
		ID: "s-1", CompanyID: "5", BranchID: "12", Status: entity.ServiceStatusOpen,
	}
	out, err := uc.Assign(context.Background(), gestorSuc12, "s-1", dto.AssignServiceRequest{PersonnelID: "p-9"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", out.PersonnelID)
	assert.Equal(t, entity.ServiceStatusInProgress, out.Status)
}
