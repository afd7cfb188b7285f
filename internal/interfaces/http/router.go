package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bsgoods-inventory/internal/application/auth"
	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/application/session"
	apptable "github.com/jhoicas/bsgoods-inventory/internal/application/table"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Sessions  *session.Registry
	Reports   apptable.ReportGenerator
	Icons     *icons.Registry
	Validator *validation.Validator
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + sesión del usuario)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), SessionMiddleware(deps.Sessions))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler()
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/reload", productHandler.Reload)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/duplicate", productHandler.Duplicate)

	// Selección y diálogos
	selection := protected.Group("/selection")
	selectionHandler := NewSelectionHandler(deps.Validator)
	selection.Get("/", selectionHandler.Get)
	selection.Put("/", selectionHandler.Put)
	selection.Delete("/", selectionHandler.Delete)
	selection.Post("/delete", selectionHandler.ConfirmDelete)

	// Tabla
	table := protected.Group("/table")
	tableHandler := NewTableHandler(deps.Validator, deps.Reports)
	table.Get("/", tableHandler.View)
	table.Get("/options", tableHandler.Options)
	table.Get("/export.pdf", tableHandler.ExportPDF)
	table.Delete("/filters", tableHandler.ResetFilters)
	table.Post("/filters/categories/:value", tableHandler.ToggleCategory)
	table.Delete("/filters/categories", tableHandler.ClearCategories)
	table.Post("/filters/statuses/:value", tableHandler.ToggleStatus)
	table.Delete("/filters/statuses", tableHandler.ClearStatuses)
	table.Put("/sort", tableHandler.SetSort)
	table.Delete("/sort", tableHandler.ClearSort)
	table.Put("/pagination", tableHandler.SetPagination)
	table.Post("/pagination/next", tableHandler.NextPage)
	table.Post("/pagination/prev", tableHandler.PrevPage)

	protected.Get("/notifications", NewNotificationHandler().Drain)
	protected.Get("/icons", NewIconHandler(deps.Icons).List)
}
