package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	appinv "github.com/jhoicas/Costeo-api/internal/application/inventory"
	apppricing "github.com/jhoicas/Costeo-api/internal/application/pricing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SetSupplies   *appcosting.SetSuppliesUseCase
	SetCombo      *appcosting.SetComboUseCase
	Records       *appcosting.RecordQuery
	ApplyMovement *appinv.ApplyMovementUseCase
	BulkEntry     *appinv.BulkEntryUseCase
	Pricing       *apppricing.PriceTransformationUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validate := validator.New()
	api := app.Group("/api")

	// Composición y auditoría de producto
	products := api.Group("/products")
	costingHandler := NewCostingHandler(deps.SetSupplies, deps.SetCombo, deps.Records, validate)
	products.Post("/:id/supplies", costingHandler.SetSupplies)
	products.Post("/:id/combo", costingHandler.SetCombo)
	products.Get("/:id/records", costingHandler.GetRecords)

	// Movimientos de stock
	stock := api.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement, deps.BulkEntry, validate)
	stock.Post("/movements", inventoryHandler.ApplyMovement)
	stock.Post("/bulk-entry", inventoryHandler.BulkEntry)

	// Transformaciones de precio
	prices := api.Group("/prices")
	pricingHandler := NewPricingHandler(deps.Pricing, validate)
	prices.Post("/adjust-percent", pricingHandler.AdjustPercent)
	prices.Post("/rebase", pricingHandler.Rebase)
}
