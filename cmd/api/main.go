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

	"github.com/jhoicas/Almacen-erp/internal/application/auth"
	"github.com/jhoicas/Almacen-erp/internal/application/fulfillment"
	"github.com/jhoicas/Almacen-erp/internal/application/inventory"
	"github.com/jhoicas/Almacen-erp/internal/application/procurement"
	"github.com/jhoicas/Almacen-erp/internal/application/reports"
	infrapdf "github.com/jhoicas/Almacen-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-erp/internal/interfaces/http"
	"github.com/jhoicas/Almacen-erp/pkg/config"
	"github.com/jhoicas/Almacen-erp/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	purchaseRepo := postgres.NewPurchaseRequestRepository(pool)
	grnRepo := postgres.NewGRNRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	fulfillmentUC := fulfillment.NewUseCase(txRunner, requestRepo, itemRepo, userRepo)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, categoryRepo, userRepo)
	procurementUC := procurement.NewUseCase(txRunner, purchaseRepo, grnRepo, userRepo)
	reportsUC := reports.NewUseCase(issueRepo, userRepo)

	// PDF: nota de entrega de la solicitud de material
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := reports.NewPDFUseCase(requestRepo, issueRepo, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Almacén ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		FulfillmentUC: fulfillmentUC,
		InventoryUC:   inventoryUC,
		ProcurementUC: procurementUC,
		ReportsUC:     reportsUC,
		PDFUC:         pdfUC,
		JWTSecret:     cfg.JWT.Secret,
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
