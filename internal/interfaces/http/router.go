package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-erp/internal/application/auth"
	"github.com/jhoicas/Almacen-erp/internal/application/fulfillment"
	"github.com/jhoicas/Almacen-erp/internal/application/inventory"
	"github.com/jhoicas/Almacen-erp/internal/application/procurement"
	"github.com/jhoicas/Almacen-erp/internal/application/reports"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	FulfillmentUC *fulfillment.UseCase
	InventoryUC   *inventory.UseCase
	ProcurementUC *procurement.UseCase
	ReportsUC     *reports.UseCase
	PDFUC         *reports.PDFUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo bodegueros y administradores tocan stock y entregas.
	storeKeeper := RequireRole(entity.RoleBodeguero, entity.RoleAdmin)

	// Usuarios (protegido)
	usersGroup := protected.Group("/users")
	usersGroup.Get("/", RequireRole(entity.RoleAdmin), authHandler.ListUsers)
	usersGroup.Get("/:id", authHandler.GetUser)

	// Solicitudes de material (protegido)
	requestsGroup := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.FulfillmentUC, deps.PDFUC)
	requestsGroup.Post("/", requestHandler.Create)
	requestsGroup.Get("/pending", requestHandler.ListPending)
	requestsGroup.Get("/issued", requestHandler.ListIssued)
	requestsGroup.Post("/issue-batch", storeKeeper, requestHandler.IssueBatch)
	requestsGroup.Patch("/line-items/:id/issue", storeKeeper, requestHandler.Issue)
	requestsGroup.Patch("/line-items/:id/no-stock", storeKeeper, requestHandler.MarkNoStock)
	requestsGroup.Get("/:id/note", requestHandler.DownloadIssueNote)
	requestsGroup.Get("/:id", requestHandler.GetByID)

	// Catálogo de ítems (protegido)
	itemsGroup := protected.Group("/items")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	itemsGroup.Post("/", storeKeeper, inventoryHandler.Create)
	itemsGroup.Get("/", inventoryHandler.List)
	itemsGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	itemsGroup.Get("/categories", inventoryHandler.ListCategories)
	itemsGroup.Get("/types", inventoryHandler.ListTypes)
	itemsGroup.Get("/:code", inventoryHandler.GetByCode)
	itemsGroup.Put("/:code", storeKeeper, inventoryHandler.Update)
	itemsGroup.Delete("/:code", storeKeeper, inventoryHandler.Deactivate)
	itemsGroup.Patch("/:code/adjust-stock", storeKeeper, inventoryHandler.AdjustStock)

	// Solicitudes de compra (protegido)
	purchasesGroup := protected.Group("/purchase-requests", storeKeeper)
	purchaseHandler := NewPurchaseHandler(deps.ProcurementUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Patch("/:id/approve", RequireRole(entity.RoleAdmin), purchaseHandler.Approve)
	purchasesGroup.Post("/:id/grn", purchaseHandler.CreateGRN)
	purchasesGroup.Get("/:id/grn/check", purchaseHandler.CheckGRN)

	// Historial de entregas y reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportsUC)
	issuesGroup := protected.Group("/issues")
	issuesGroup.Get("/", reportHandler.ListIssues)
	issuesGroup.Get("/item/code/:code", reportHandler.ListIssuesByItemCode)
	issuesGroup.Get("/item/:id", reportHandler.ListIssuesByItem)
	issuesGroup.Get("/request/:id", reportHandler.ListIssuesByRequest)
	issuesGroup.Get("/user/:userId/other-distributions", reportHandler.OtherDistributions)
	issuesGroup.Get("/user/:userId", reportHandler.ListIssuesByUser)

	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/material-distribution/:userId", reportHandler.MaterialDistribution)
}
