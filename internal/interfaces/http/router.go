package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/catalog"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reports"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	SupplierUC *catalog.SupplierUseCase
	Engine     *inventory.Engine
	SaleUC     *sales.SaleUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
	JWTIssuer  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token del operador de caja)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole(auth.RoleOperator))

	catHandler := NewCategoryHandler(deps.CategoryUC, deps.SupplierUC)
	categories := protected.Group("/categories")
	categories.Post("/", catHandler.CreateCategory)
	categories.Get("/", catHandler.ListCategories)
	categories.Get("/:id", catHandler.GetCategory)
	categories.Put("/:id", catHandler.UpdateCategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catHandler.CreateSupplier)
	suppliers.Get("/", catHandler.ListSuppliers)
	suppliers.Get("/:id", catHandler.GetSupplier)

	// Products: las rutas fijas van antes de /:id
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/movements/:productId", inventoryHandler.Movements)
	invGroup.Get("/audit/:productId", inventoryHandler.Audit)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Delete("/:id", saleHandler.Cancel)

	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/today", reportHandler.Today)
	reportsGroup.Get("/month", reportHandler.Month)
	reportsGroup.Get("/period", reportHandler.Period)
	reportsGroup.Get("/by-product", reportHandler.ByProduct)
	reportsGroup.Get("/by-category", reportHandler.ByCategory)
	reportsGroup.Get("/daily", reportHandler.Daily)
}
