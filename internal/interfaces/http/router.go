package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ephone-api/internal/application/auth"
	"github.com/jhoicas/ephone-api/internal/application/billing"
	"github.com/jhoicas/ephone-api/internal/application/inventory"
	"github.com/jhoicas/ephone-api/internal/application/usecase"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *inventory.UseCase
	UserUC      *usecase.UserUseCase
	SettingsUC  *usecase.SettingsUseCase
	LifecycleUC *billing.LifecycleUseCase
	ReportingUC *billing.ReportingUseCase
	JWTSecret   string
	ServiceName string

	Log             zerolog.Logger
	RequestObserver RequestObserver // opcional
	MetricsHandler  nethttp.Handler // opcional; expone /metrics
}

// Router registra middlewares globales y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log, deps.RequestObserver))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	backOffice := RequireRole(entity.RoleAdmin, entity.RoleFinance)
	var users UserLookup
	if deps.UserUC != nil {
		users = deps.UserUC
	}
	sectorAccess := RequireSectorAccess("id", users)

	inv := NewInventoryHandler(deps.InventoryUC)
	invoices := NewInvoiceHandler(deps.LifecycleUC, deps.ReportingUC)

	// Sectores: lectura back office, escritura admin
	sectors := protected.Group("/sectors")
	sectors.Get("/", backOffice, inv.ListSectors)
	sectors.Post("/", adminOnly, inv.CreateSector)
	sectors.Get("/:id", backOffice, inv.GetSector)
	sectors.Put("/:id", adminOnly, inv.UpdateSector)

	// Vista del sector y facturación (admin, finance o usuario asignado)
	sectors.Get("/:id/assets", sectorAccess, inv.SectorAssets)
	sectors.Get("/:id/invoices", sectorAccess, invoices.History)
	sectors.Get("/:id/invoices/current", sectorAccess, invoices.Current)
	sectors.Post("/:id/invoices/current/approve", sectorAccess, invoices.ApproveCurrent)
	sectors.Post("/:id/invoices/approve", sectorAccess, invoices.Approve)
	sectors.Get("/:id/invoices/:year/:month", sectorAccess, invoices.PeriodStatus)
	sectors.Get("/:id/invoices/:year/:month/items", sectorAccess, invoices.Items)
	sectors.Get("/:id/invoices/:year/:month/pdf", sectorAccess, invoices.PDF)

	// Ramales
	extensions := protected.Group("/extensions")
	extensions.Get("/", backOffice, inv.ListExtensions)
	extensions.Post("/", adminOnly, inv.CreateExtension)
	extensions.Get("/:id", backOffice, inv.GetExtension)
	extensions.Put("/:id", adminOnly, inv.UpdateExtension)

	// Chips
	sims := protected.Group("/sim-cards")
	sims.Get("/", backOffice, inv.ListSimCards)
	sims.Post("/", adminOnly, inv.CreateSimCard)
	sims.Get("/:id", backOffice, inv.GetSimCard)
	sims.Put("/:id", adminOnly, inv.UpdateSimCard)

	// Usuarios y configuración (admin)
	userHandler := NewUserHandler(deps.UserUC, deps.SettingsUC)
	protected.Get("/users", adminOnly, userHandler.List)
	protected.Post("/users", adminOnly, userHandler.Create)
	protected.Put("/users/:id", adminOnly, userHandler.Update)
	protected.Get("/settings", adminOnly, userHandler.GetSettings)
	protected.Put("/settings", adminOnly, userHandler.UpdateSettings)

	// Reportes financieros
	reports := NewReportHandler(deps.ReportingUC)
	protected.Get("/reports/summary", backOffice, reports.Summary)
	protected.Get("/reports/approved-sectors", backOffice, reports.ApprovedSectors)
}
