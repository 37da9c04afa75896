package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/jhoicas/ephone-api/internal/application/auth"
	"github.com/jhoicas/ephone-api/internal/application/billing"
	"github.com/jhoicas/ephone-api/internal/application/inventory"
	"github.com/jhoicas/ephone-api/internal/application/usecase"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
	infraamqp "github.com/jhoicas/ephone-api/internal/infrastructure/amqp"
	"github.com/jhoicas/ephone-api/internal/infrastructure/memory"
	"github.com/jhoicas/ephone-api/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/ephone-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ephone-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ephone-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/ephone-api/internal/interfaces/http"
	"github.com/jhoicas/ephone-api/pkg/config"
	"github.com/jhoicas/ephone-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los puertos de persistencia elegidos por STORAGE_DRIVER.
type storage struct {
	sectors    repository.SectorRepository
	extensions repository.ExtensionRepository
	simCards   repository.SimCardRepository
	users      repository.UserRepository
	settings   repository.SettingsRepository
	ledger     repository.InvoiceLedger

	seed  func(ctx context.Context) (bool, error)
	close func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuración inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	if cfg.App.SeedDemo {
		loaded, err := store.seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar datos de demostración")
		}
		log.Info().Bool("loaded", loaded).Msg("datos de demostración")
	}

	metrics := observability.NewMetrics()

	var notifier billing.ApprovalNotifier = billing.NopNotifier{}
	if cfg.Events.Enabled() {
		pub, err := infraamqp.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey, log.Component("amqp"), metrics)
		if err != nil {
			// sin broker la aprobación sigue funcionando; solo se pierde el evento
			log.Error().Err(err).Msg("conexión AMQP, eventos desactivados")
		} else {
			defer pub.Close()
			notifier = pub
		}
	}

	lifecycleUC := billing.NewLifecycleUseCase(
		store.sectors, store.extensions, store.simCards, store.ledger,
		billing.WithNotifier(notifier),
		billing.WithMetrics(metrics),
		billing.WithLogger(log.Component("lifecycle")),
	)
	reportingUC := billing.NewReportingUseCase(
		store.sectors, store.extensions, store.simCards, store.ledger,
		infrapdf.NewMarotoStatementGenerator(),
		log.Component("reporting"),
	)
	inventoryUC := inventory.NewUseCase(store.sectors, store.extensions, store.simCards, log.Component("inventory"))
	userUC := usecase.NewUserUseCase(store.users, store.sectors)
	settingsUC := usecase.NewSettingsUseCase(store.settings)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "e-Phone API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		InventoryUC:     inventoryUC,
		UserUC:          userUC,
		SettingsUC:      settingsUC,
		LifecycleUC:     lifecycleUC,
		ReportingUC:     reportingUC,
		JWTSecret:       cfg.JWT.Secret,
		ServiceName:     cfg.App.Name,
		Log:             log.Component("http"),
		RequestObserver: metrics,
		MetricsHandler:  metrics.Handler(),
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

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.DB.Migrate {
			if err := postgres.RunMigrations(pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		repos := postgres.NewRepos(pool)
		tx := postgres.NewTxRunner(pool)
		return &storage{
			sectors:    repos.Sectors,
			extensions: repos.Extensions,
			simCards:   repos.SimCards,
			users:      repos.Users,
			settings:   repos.Settings,
			ledger:     repos.Ledger,
			seed: func(ctx context.Context) (bool, error) {
				var loaded bool
				err := tx.Run(ctx, func(r postgres.Repos) error {
					var err error
					loaded, err = seed.Demo(ctx, seed.Target{
						Sectors: r.Sectors, Extensions: r.Extensions, SimCards: r.SimCards,
						Users: r.Users, Settings: r.Settings,
					})
					return err
				})
				return loaded, err
			},
			close: pool.Close,
		}, nil
	}

	mem := memory.NewStore()
	if cfg.Billing.ClosingDay > 0 {
		if err := mem.Settings().Save(ctx, &entity.Settings{ClosingDay: cfg.Billing.ClosingDay}); err != nil {
			return nil, err
		}
	}
	// la configuración ya viene de BILLING_CLOSING_DAY; el seed no la pisa
	target := seed.Target{
		Sectors: mem.Sectors(), Extensions: mem.Extensions(), SimCards: mem.SimCards(),
		Users: mem.Users(),
	}
	return &storage{
		sectors:    mem.Sectors(),
		extensions: mem.Extensions(),
		simCards:   mem.SimCards(),
		users:      mem.Users(),
		settings:   mem.Settings(),
		ledger:     memory.NewInvoiceLedger(),
		seed:       func(ctx context.Context) (bool, error) { return seed.Demo(ctx, target) },
		close:      func() {},
	}, nil
}
