package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust.
type AdjustStockRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction"` // entry | exit
	Note      string `json:"note"`
	// UnitCost opcional, solo en entradas: recalcula el costo promedio ponderado.
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// AdjustStockResponse resultado de un ajuste.
type AdjustStockResponse struct {
	NewStock   int             `json:"new_stock"`
	MovementID int64           `json:"movement_id"`
	CostPrice  decimal.Decimal `json:"cost_price"`
}

// MovementResponse un movimiento del libro.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes"`
	BatchID   string    `json:"batch_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StockAuditResponse conciliación entre el contador y el libro de movimientos.
// Consistent es true si CurrentStock == Entries - Exits.
type StockAuditResponse struct {
	ProductID    int64 `json:"product_id"`
	CurrentStock int   `json:"current_stock"`
	Entries      int64 `json:"entries"`
	Exits        int64 `json:"exits"`
	LedgerStock  int64 `json:"ledger_stock"`
	Movements    int64 `json:"movements"`
	Consistent   bool  `json:"consistent"`
}
