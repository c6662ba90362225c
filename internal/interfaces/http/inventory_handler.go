package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
)

// InventoryHandler ajustes manuales, libro de movimientos y auditoría (protegido).
type InventoryHandler struct {
	engine *inventory.Engine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.Engine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Adjust godoc
// @Summary      Ajustar stock (entrada o salida)
// @Tags         inventory
// @Security     Bearer
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.engine.AdjustStock(c.UserContext(), inventory.AdjustInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Direction: in.Direction,
		Note:      in.Note,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{NewStock: res.NewStock, MovementID: res.MovementID, CostPrice: res.CostPrice})
}

// Movements lista el libro de un producto. Query: from, to (AAAA-MM-DD), limit, offset.
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	from, err := optionalDate(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	// Rango semiabierto [from, to+1 día) en UTC, igual que los reportes.
	if from != nil {
		start := from.UTC()
		from = &start
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).UTC()
		to = &end
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.engine.ListMovements(c.UserContext(), productID, from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Audit compara el stock del producto con el libro de movimientos.
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.engine.Audit(c.UserContext(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
