package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/auth"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	BranchUC     *usecase.BranchUseCase
	PersonnelUC  *usecase.PersonnelUseCase
	UserUC       *usecase.UserUseCase
	CustomerUC   *usecase.CustomerUseCase
	ServiceUC    *usecase.ServiceUseCase
	PDFUC        *usecase.ServiceOrderPDFUseCase
	DefinitionUC *usecase.DefinitionUseCase
	DashboardUC  *usecase.DashboardUseCase
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y suscripción vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireSubscription(deps.AuthUC))

	// Companies: lectura y edición según alcance; baja y suscripción solo super_admin
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Logger)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Put("/:id/subscription", RequireRole(access.RoleSuperAdmin), companyHandler.ExtendSubscription)
	companies.Delete("/:id", RequireRole(access.RoleSuperAdmin), companyHandler.Delete)

	// Branches
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC, deps.Logger)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Put("/:id/password", branchHandler.ResetPassword)
	branches.Delete("/:id", branchHandler.Delete)

	// Personnel
	personnel := protected.Group("/personnel")
	personnelHandler := NewPersonnelHandler(deps.PersonnelUC, deps.Logger)
	personnel.Post("/", personnelHandler.Create)
	personnel.Get("/", personnelHandler.List)
	personnel.Get("/:id", personnelHandler.GetByID)
	personnel.Put("/:id", personnelHandler.Update)
	personnel.Delete("/:id", personnelHandler.Delete)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Logger)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Customers: se crean dentro del flujo de servicios, no hay POST directo
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Logger)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Services
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC, deps.PDFUC, deps.Logger)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Put("/:id/assign", serviceHandler.Assign)
	services.Delete("/:id", serviceHandler.Delete)
	services.Get("/:id/pdf", serviceHandler.PDF)

	// Definitions (catálogos por tipo)
	definitions := protected.Group("/definitions/:kind")
	definitionHandler := NewDefinitionHandler(deps.DefinitionUC, deps.Logger)
	definitions.Get("/", definitionHandler.List)
	definitions.Post("/", definitionHandler.Create)
	definitions.Get("/:id", definitionHandler.GetByID)
	definitions.Put("/:id", definitionHandler.Update)
	definitions.Delete("/:id", definitionHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Logger)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
