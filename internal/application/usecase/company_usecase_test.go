package usecase_test

import (
	"context"
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

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if c, ok := r.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCompanyRepo) GetByTaxNumber(_ context.Context, tax string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.TaxNumber == tax {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) GetByEmail(_ context.Context, email string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

// fakePurgeRepo registra el orden exacto de los borrados para verificar que
// respeta las FK, y permite simular servicios pendientes.
type fakePurgeRepo struct {
	services int
	calls    []string
}

func (r *fakePurgeRepo) CountServices(_ context.Context, _ string) (int, error) {
	return r.services, nil
}

func (r *fakePurgeRepo) DeleteDefinitions(_ context.Context, kind, _ string) error {
	r.calls = append(r.calls, "definitions:"+kind)
	return nil
}

func (r *fakePurgeRepo) DeleteCustomers(_ context.Context, _ string) error {
	r.calls = append(r.calls, "customers")
	return nil
}

func (r *fakePurgeRepo) DeleteUsers(_ context.Context, _ string) error {
	r.calls = append(r.calls, "users")
	return nil
}

func (r *fakePurgeRepo) DeletePersonnel(_ context.Context, _ string) error {
	r.calls = append(r.calls, "personnel")
	return nil
}

func (r *fakePurgeRepo) DeleteBranches(_ context.Context, _ string) error {
	r.calls = append(r.calls, "branches")
	return nil
}

func (r *fakePurgeRepo) DeleteCompany(_ context.Context, _ string) error {
	r.calls = append(r.calls, "company")
	return nil
}

type fakePurgeTx struct {
	purge *fakePurgeRepo
}

func (t *fakePurgeTx) Run(ctx context.Context, fn func(repository.CompanyPurgeRepository) error) error {
	return fn(t.purge)
}

var superAdmin = access.Actor{Role: access.RoleSuperAdmin, UserID: "root"}

func buildCompanyUC(purge *fakePurgeRepo) (*usecase.CompanyUseCase, *fakeCompanyRepo) {
	repo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"emp-1": {ID: "emp-1", Name: "Clima Andina SAS", TaxNumber: "900123456", Email: "admin@climaandina.co"},
	}}
	return usecase.NewCompanyUseCase(repo, &fakePurgeTx{purge: purge}), repo
}

func TestCompanyDelete_OrdenDeCascada(t *testing.T) {
	purge := &fakePurgeRepo{}
	uc, repo := buildCompanyUC(purge)

	err := uc.Delete(context.Background(), superAdmin, "emp-1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"definitions:models",
		"definitions:brands",
		"definitions:devices",
		"definitions:complaints",
		"definitions:operations",
		"customers",
		"users",
		"personnel",
		"branches",
		"company",
	}, purge.calls, "el orden de borrado debe respetar las FK")
	_ = repo
}

func TestCompanyDelete_ConServicios_AbortaCompleto(t *testing.T) {
	purge := &fakePurgeRepo{services: 3}
	uc, _ := buildCompanyUC(purge)

	err := uc.Delete(context.Background(), superAdmin, "emp-1")
	assert.ErrorIs(t, err, domain.ErrCompanyHasServices)
	assert.Empty(t, purge.calls, "con servicios registrados no se borra nada")
}

func TestCompanyDelete_SoloSuperAdmin(t *testing.T) {
	purge := &fakePurgeRepo{}
	uc, _ := buildCompanyUC(purge)

	err := uc.Delete(context.Background(), adminEmpresa5, "emp-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, purge.calls)
}

func TestCompanyDelete_NoExiste(t *testing.T) {
	purge := &fakePurgeRepo{}
	uc, _ := buildCompanyUC(purge)

	err := uc.Delete(context.Background(), superAdmin, "emp-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyGetByID_AdminSoloLaSuya(t *testing.T) {
	uc, repo := buildCompanyUC(&fakePurgeRepo{})
	repo.companies["5"] = &entity.Company{ID: "5", Name: "Frío Total", TaxNumber: "901"}

	out, err := uc.GetByID(context.Background(), adminEmpresa5, "5")
	require.NoError(t, err)
	assert.Equal(t, "Frío Total", out.Name)

	_, err = uc.GetByID(context.Background(), adminEmpresa5, "emp-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyExtendSubscription_VentanaInvalida(t *testing.T) {
	uc, repo := buildCompanyUC(&fakePurgeRepo{})
	c := repo.companies["emp-1"]

	_, err := uc.ExtendSubscription(context.Background(), superAdmin, "emp-1", dto.ExtendSubscriptionRequest{
		ServiceStartDate: c.CreatedAt.AddDate(0, 1, 0),
		ServiceEndDate:   c.CreatedAt,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ExtendSubscription(context.Background(), adminEmpresa5, "5", dto.ExtendSubscriptionRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
