package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/servitec-api/internal/application/auth"
	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/servitec-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type memUserRepo struct{ byEmail map[string]*entity.User }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}
func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}
func (r *memUserRepo) Delete(_ context.Context, _ string) error { return nil }
func (r *memUserRepo) List(_ context.Context, _ access.Actor, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

type memBranchRepo struct{ byEmail map[string]*entity.Branch }

func (r *memBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.byEmail[b.Email] = b
	return nil
}
func (r *memBranchRepo) GetByID(_ context.Context, _ string) (*entity.Branch, error) {
	return nil, nil
}
func (r *memBranchRepo) GetByEmail(_ context.Context, email string) (*entity.Branch, error) {
	return r.byEmail[email], nil
}
func (r *memBranchRepo) Update(_ context.Context, _ *entity.Branch) error { return nil }
func (r *memBranchRepo) Delete(_ context.Context, _ string) error         { return nil }
func (r *memBranchRepo) List(_ context.Context, _ access.Actor, _ string, _, _ int) ([]*entity.Branch, error) {
	return nil, nil
}

type memPersonnelRepo struct{ byEmail map[string]*entity.Personnel }

func (r *memPersonnelRepo) Create(_ context.Context, p *entity.Personnel) error {
	r.byEmail[p.Email] = p
	return nil
}
func (r *memPersonnelRepo) GetByID(_ context.Context, _ string) (*entity.Personnel, error) {
	return nil, nil
}
func (r *memPersonnelRepo) GetByEmail(_ context.Context, email string) (*entity.Personnel, error) {
	return r.byEmail[email], nil
}
func (r *memPersonnelRepo) Update(_ context.Context, _ *entity.Personnel) error { return nil }
func (r *memPersonnelRepo) Delete(_ context.Context, _ string) error            { return nil }
func (r *memPersonnelRepo) List(_ context.Context, _ access.Actor, _ string, _, _ int) ([]*entity.Personnel, error) {
	return nil, nil
}

type memCompanyRepo struct{ byID map[string]*entity.Company }

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}
func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.byID[id], nil
}
func (r *memCompanyRepo) GetByTaxNumber(_ context.Context, tax string) (*entity.Company, error) {
	for _, c := range r.byID {
		if c.TaxNumber == tax {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCompanyRepo) GetByEmail(_ context.Context, _ string) (*entity.Company, error) {
	return nil, nil
}
func (r *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}
func (r *memCompanyRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}

type directTx struct {
	companies *memCompanyRepo
	users     *memUserRepo
}

func (t *directTx) Run(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return fn(t.companies, t.users)
}

type fixture struct {
	uc        *auth.AuthUseCase
	users     *memUserRepo
	branches  *memBranchRepo
	personnel *memPersonnelRepo
	companies *memCompanyRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:     &memUserRepo{byEmail: map[string]*entity.User{}},
		branches:  &memBranchRepo{byEmail: map[string]*entity.Branch{}},
		personnel: &memPersonnelRepo{byEmail: map[string]*entity.Personnel{}},
		companies: &memCompanyRepo{byID: map[string]*entity.Company{}},
	}
	f.uc = auth.NewAuthUseCase(
		f.users, f.branches, f.personnel, f.companies,
		&directTx{companies: f.companies, users: f.users},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "servitec-api"},
	)
	return f
}

// seedCompany crea una empresa con suscripción vigente por los días indicados
// (negativo para una ya vencida).
func (f *fixture) seedCompany(id string, days int) {
	now := time.Now()
	f.companies.byID[id] = &entity.Company{
		ID: id, Name: "Empresa " + id, TaxNumber: "900" + id, Status: "active",
		ServiceStartDate: now.AddDate(0, 0, -10),
		ServiceEndDate:   now.AddDate(0, 0, days),
	}
}

func TestRegisterCompany_CreaEmpresaYAdminJuntos(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName:     "Clima Andina SAS",
		TaxNumber:       "900123456",
		CompanyPassword: "clave-empresa",
		AdminName:       "Ana Gómez",
		AdminEmail:      "ana@climaandina.co",
		AdminPassword:   "clave-admin",
	})
	require.NoError(t, err)

	assert.Equal(t, out.Company.ID, out.Admin.CompanyID)
	assert.Equal(t, string(access.RoleCompanyAdmin), out.Admin.Role)
	assert.Len(t, f.companies.byID, 1)
	assert.NotNil(t, f.users.byEmail["ana@climaandina.co"])
	// Ventana inicial de 30 días.
	c := f.companies.byID[out.Company.ID]
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), c.ServiceEndDate, time.Minute)
}

func TestRegisterCompany_NITDuplicado(t *testing.T) {
	f := newFixture(t)
	f.companies.byID["x"] = &entity.Company{ID: "x", TaxNumber: "900123456"}

	_, err := f.uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName: "Otra", TaxNumber: "900123456", CompanyPassword: "c",
		AdminEmail: "a@b.co", AdminPassword: "p",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLoginUser_EmiteTokenConAlcance(t *testing.T) {
	f := newFixture(t)
	f.seedCompany("emp-1", 30)
	f.users.byEmail["ana@x.co"] = &entity.User{
		ID: "u-1", CompanyID: "emp-1", Email: "ana@x.co", Name: "Ana",
		PasswordHash: hash(t, "clave"), Role: string(access.RoleCompanyAdmin), Status: "active",
	}

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.co", Password: "clave"})
	require.NoError(t, err)

	sub, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", sub.AccountID)
	assert.Equal(t, pkgjwt.KindUser, sub.Kind)
	assert.Equal(t, string(access.RoleCompanyAdmin), sub.Role)
	assert.Equal(t, "emp-1", sub.CompanyID)
}

func TestLoginUser_ClaveIncorrecta(t *testing.T) {
	f := newFixture(t)
	f.seedCompany("emp-1", 30)
	f.users.byEmail["ana@x.co"] = &entity.User{
		ID: "u-1", CompanyID: "emp-1", Email: "ana@x.co",
		PasswordHash: hash(t, "clave"), Role: string(access.RoleCompanyAdmin), Status: "active",
	}
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginUser_SuscripcionVencida(t *testing.T) {
	f := newFixture(t)
	f.seedCompany("emp-1", -1)
	f.users.byEmail["ana@x.co"] = &entity.User{
		ID: "u-1", CompanyID: "emp-1", Email: "ana@x.co",
		PasswordHash: hash(t, "clave"), Role: string(access.RoleCompanyAdmin), Status: "active",
	}
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.co", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)
}

func TestLoginUser_SuperAdminIgnoraVentana(t *testing.T) {
	f := newFixture(t)
	// Sin empresa alguna: el super_admin no pertenece a ningún tenant.
	f.users.byEmail["root@servitec.co"] = &entity.User{
		ID: "root", Email: "root@servitec.co",
		PasswordHash: hash(t, "clave"), Role: string(access.RoleSuperAdmin), Status: "active",
	}
	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "root@servitec.co", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleSuperAdmin), out.Role)
}

func TestLoginBranch_ActuaComoGestorDeSucursal(t *testing.T) {
	f := newFixture(t)
	f.seedCompany("emp-1", 30)
	f.branches.byEmail["norte@x.co"] = &entity.Branch{
		ID: "suc-12", CompanyID: "emp-1", Email: "norte@x.co", Name: "Sede Norte",
		PasswordHash: hash(t, "clave"), Status: "active",
	}

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{
		Kind: pkgjwt.KindBranch, Email: "norte@x.co", Password: "clave",
	})
	require.NoError(t, err)

	sub, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleBranchManager), sub.Role)
	assert.Equal(t, "suc-12", sub.BranchID, "la sucursal es su propio alcance")
}

func TestLoginPersonnel_ResuelvePersonnelIDEnElToken(t *testing.T) {
	f := newFixture(t)
	f.seedCompany("emp-1", 30)
	f.personnel.byEmail["tecnico@x.co"] = &entity.Personnel{
		ID: "per-9", CompanyID: "emp-1", BranchID: "suc-12",
		Email: "tecnico@x.co", Name: "Luis Rojas",
		PasswordHash: hash(t, "clave"), Status: "active",
	}

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{
		Kind: pkgjwt.KindPersonnel, Email: "tecnico@x.co", Password: "clave",
	})
	require.NoError(t, err)

	sub, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleTechnician), sub.Role)
	assert.Equal(t, "per-9", sub.PersonnelID, "la identidad del técnico se resuelve en el login")
	assert.Equal(t, "suc-12", sub.BranchID)
}

func TestLoginPersonnel_SuscripcionVencida(t *testing.T) {
	f := newFixture(t)
	f.seedCompany("emp-1", -5)
	f.personnel.byEmail["tecnico@x.co"] = &entity.Personnel{
		ID: "per-9", CompanyID: "emp-1", Email: "tecnico@x.co",
		PasswordHash: hash(t, "clave"), Status: "active",
	}
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{
		Kind: pkgjwt.KindPersonnel, Email: "tecnico@x.co", Password: "clave",
	})
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)
}

func TestLogin_CuentaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
