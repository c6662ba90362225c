package sales

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// StockAdjuster mueve stock con los repositorios de la transacción de la venta.
// Lo implementa inventory.Engine.
type StockAdjuster interface {
	ApplyInTx(ctx context.Context, repos repository.Repositories, in inventory.AdjustInput, batchID string) (*inventory.AdjustResult, error)
}

// ReceiptData datos necesarios para imprimir el comprobante de una venta.
type ReceiptData struct {
	Sale  *entity.Sale
	Items []*entity.SaleItem
}

// ReceiptGenerator genera el comprobante (PDF) de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
