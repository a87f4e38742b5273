package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/servitec-api/internal/application/auth"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/servitec-api/internal/infrastructure/pdf"
	"github.com/jhoicas/servitec-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/servitec-api/internal/interfaces/http"
	"github.com/jhoicas/servitec-api/pkg/config"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	personnelRepo := postgres.NewPersonnelRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	definitionRepo := postgres.NewDefinitionRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	registrationTx := postgres.NewRegistrationTxRunner(pool)
	serviceTx := postgres.NewServiceTxRunner(pool)
	purgeTx := postgres.NewPurgeTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, personnelRepo, companyRepo, registrationTx, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, purgeTx)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	personnelUC := usecase.NewPersonnelUseCase(personnelRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	serviceUC := usecase.NewServiceUseCase(serviceTx, serviceRepo)
	definitionUC := usecase.NewDefinitionUseCase(definitionRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	// PDF: orden de servicio imprimible para entregar al cliente
	pdfGenerator := infrapdf.NewMarotoServiceOrderGenerator()
	pdfUC := usecase.NewServiceOrderPDFUseCase(serviceRepo, companyRepo, customerRepo, personnelRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Servitec API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		BranchUC:     branchUC,
		PersonnelUC:  personnelUC,
		UserUC:       userUC,
		CustomerUC:   customerUC,
		ServiceUC:    serviceUC,
		PDFUC:        pdfUC,
		DefinitionUC: definitionUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
