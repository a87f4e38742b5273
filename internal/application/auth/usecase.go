package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/servitec-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationTxRunner abre una transacción para el alta de empresa: la empresa
// y su usuario company_admin se crean juntos o no se crea ninguno.
type RegistrationTxRunner interface {
	Run(ctx context.Context, fn func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro de empresa y login.
// El login atiende tres espacios de credenciales independientes (usuarios
// administrativos, sucursales y personal técnico); cada uno emite un token con
// el rol y el alcance ya resueltos, de modo que los filtros nunca vuelven a
// consultar identidad.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	branchRepo    repository.BranchRepository
	personnelRepo repository.PersonnelRepository
	companyRepo   repository.CompanyRepository
	txRunner      RegistrationTxRunner
	jwtCfg        JWTConfig
	now           func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	personnelRepo repository.PersonnelRepository,
	companyRepo repository.CompanyRepository,
	txRunner RegistrationTxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		branchRepo:    branchRepo,
		personnelRepo: personnelRepo,
		companyRepo:   companyRepo,
		txRunner:      txRunner,
		jwtCfg:        jwtCfg,
		now:           time.Now,
	}
}

// RegisterCompany crea la empresa y su company_admin en una sola transacción.
// La ventana de suscripción inicial es de 30 días.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if in.CompanyName == "" || in.TaxNumber == "" || in.CompanyPassword == "" ||
		in.AdminEmail == "" || in.AdminPassword == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.companyRepo.GetByTaxNumber(ctx, in.TaxNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if prev, _ := uc.userRepo.FindByEmail(ctx, in.AdminEmail); prev != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	companyHash, err := bcrypt.GenerateFromPassword([]byte(in.CompanyPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	company := &entity.Company{
		ID:               uuid.New().String(),
		Name:             in.CompanyName,
		TaxNumber:        in.TaxNumber,
		Address:          in.Address,
		City:             in.City,
		District:         in.District,
		Phone:            in.Phone,
		Email:            in.Email,
		PasswordHash:     string(companyHash),
		ServiceStartDate: now,
		ServiceEndDate:   now.AddDate(0, 0, 30),
		Status:           "active",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	adminName := in.AdminName
	if adminName == "" {
		adminName = in.AdminEmail
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Name:         adminName,
		Email:        in.AdminEmail,
		PasswordHash: string(adminHash),
		Role:         string(access.RoleCompanyAdmin),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterCompanyResponse{
		Company: *toCompanyResponse(company),
		Admin:   *toUserResponse(admin),
	}, nil
}

// Login verifica credenciales según el tipo de cuenta, valida la ventana de
// suscripción de la empresa y emite el JWT con el alcance completo del actor.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case pkgjwt.KindUser, "":
		return uc.loginUser(ctx, in)
	case pkgjwt.KindBranch:
		return uc.loginBranch(ctx, in)
	case pkgjwt.KindPersonnel:
		return uc.loginPersonnel(ctx, in)
	}
	return nil, domain.ErrInvalidInput
}

func (uc *AuthUseCase) loginUser(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	// super_admin no pertenece a ningún tenant, no hay ventana que comprobar.
	if user.Role != string(access.RoleSuperAdmin) {
		if err := uc.checkSubscription(ctx, user.CompanyID); err != nil {
			return nil, err
		}
	}
	sub := pkgjwt.Subject{
		AccountID: user.ID,
		Kind:      pkgjwt.KindUser,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		BranchID:  user.BranchID,
	}
	return uc.issue(sub, user.Name)
}

// loginBranch autentica la credencial propia de la sucursal; la sesión actúa
// como branch_manager de esa sucursal.
func (uc *AuthUseCase) loginBranch(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	branch, err := uc.branchRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(branch.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if branch.Status != "active" {
		return nil, domain.ErrForbidden
	}
	if err := uc.checkSubscription(ctx, branch.CompanyID); err != nil {
		return nil, err
	}
	sub := pkgjwt.Subject{
		AccountID: branch.ID,
		Kind:      pkgjwt.KindBranch,
		Role:      string(access.RoleBranchManager),
		CompanyID: branch.CompanyID,
		BranchID:  branch.ID,
	}
	return uc.issue(sub, branch.Name)
}

// loginPersonnel autentica al personal técnico. La identidad canónica del
// técnico (personnel.id) queda resuelta aquí y viaja en el token; los filtros
// no vuelven a buscarla por email.
func (uc *AuthUseCase) loginPersonnel(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := uc.personnelRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if p.Status != "active" {
		return nil, domain.ErrForbidden
	}
	if err := uc.checkSubscription(ctx, p.CompanyID); err != nil {
		return nil, err
	}
	sub := pkgjwt.Subject{
		AccountID:   p.ID,
		Kind:        pkgjwt.KindPersonnel,
		Role:        string(access.RoleTechnician),
		CompanyID:   p.CompanyID,
		BranchID:    p.BranchID,
		PersonnelID: p.ID,
	}
	return uc.issue(sub, p.Name)
}

// checkSubscription valida la ventana de suscripción de la empresa del actor.
func (uc *AuthUseCase) checkSubscription(ctx context.Context, companyID string) error {
	if companyID == "" {
		return domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrForbidden
	}
	if company.Status != "active" || !company.SubscriptionActiveAt(uc.now()) {
		return domain.ErrSubscriptionExpired
	}
	return nil
}

// HasActiveSubscription implementa el contrato del middleware de suscripción.
func (uc *AuthUseCase) HasActiveSubscription(ctx context.Context, companyID string) (bool, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	if company == nil {
		return false, nil
	}
	return company.Status == "active" && company.SubscriptionActiveAt(uc.now()), nil
}

func (uc *AuthUseCase) issue(sub pkgjwt.Subject, name string) (*dto.LoginResponse, error) {
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, sub, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		Kind:        sub.Kind,
		Role:        sub.Role,
		AccountID:   sub.AccountID,
		Name:        name,
		CompanyID:   sub.CompanyID,
		BranchID:    sub.BranchID,
		PersonnelID: sub.PersonnelID,
		ExpiresAt:   uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxNumber:        c.TaxNumber,
		Address:          c.Address,
		City:             c.City,
		District:         c.District,
		Phone:            c.Phone,
		Email:            c.Email,
		ServiceStartDate: c.ServiceStartDate,
		ServiceEndDate:   c.ServiceEndDate,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
