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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/gst-invoicing-api/docs"
	appanalytics "github.com/jhoicas/gst-invoicing-api/internal/application/analytics"
	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/memory"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/viewcache"
	httpRouter "github.com/jhoicas/gst-invoicing-api/internal/interfaces/http"
	"github.com/jhoicas/gst-invoicing-api/pkg/config"
	"github.com/jhoicas/gst-invoicing-api/pkg/logger"
)

const (
	demoUserID    = "demo-user"
	demoFactoryID = "demo-factory"
)

// storage is the set of repositories the use cases need, whatever the driver.
type storage struct {
	txRunner  billing.BillingTxRunner
	factories repository.FactoryRepository
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:  postgres.NewTxRunner(pool),
		factories: postgres.NewFactoryRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}

// openMemory returns an in-process store with one factory and one customer
// owned by demoUserID.
func openMemory(ctx context.Context) (*storage, error) {
	store := memory.NewStore()
	if err := store.Factories().Create(ctx, &entity.Factory{
		ID: demoFactoryID, Name: "Demo Factory", Address: "Plot 12, MIDC, Pune", OwnerID: demoUserID,
	}); err != nil {
		return nil, err
	}
	if err := store.Customers().Create(ctx, &entity.Customer{
		ID: "demo-customer", Name: "Shree Traders", Address: "Market Yard, Pune",
		Mobile: "9800000000", TaxID: "27AAAAA0000A1Z5", OwnerID: demoUserID,
	}); err != nil {
		return nil, err
	}
	return &storage{
		txRunner:  store,
		factories: store.Factories(),
		customers: store.Customers(),
		invoices:  store.Invoices(),
		analytics: store.Analytics(),
		close:     func() {},
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("starting")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is empty: every API request will be rejected")
	}

	ctx := context.Background()
	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store, err = openMemory(ctx)
		if err == nil {
			log.Info().Str("user_id", demoUserID).Str("factory_id", demoFactoryID).Msg("memory storage seeded")
		}
	default:
		store, err = openPostgres(ctx, cfg.DB)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.close()

	views := viewcache.New(cfg.ViewCache.TTL)
	numbering := billing.NumberingConfig{
		Seed:         cfg.Numbering.Seed,
		AutoRenumber: cfg.Numbering.AutoRenumber,
	}
	invoiceUC := billing.NewInvoiceUseCase(
		store.txRunner, store.invoices, store.factories, store.customers,
		views, numbering, log.Component("billing"),
	)
	sequencerUC := billing.NewSequencerUseCase(store.factories, store.invoices, numbering)
	dashboardUC := appanalytics.NewDashboardUseCase(store.factories, store.analytics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GST Invoicing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:   invoiceUC,
		SequencerUC: sequencerUC,
		DashboardUC: dashboardUC,
		Views:       views,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}
