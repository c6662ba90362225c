package catalog

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// StockAdjuster registra el stock inicial de un producto dentro de la transacción de alta.
// Lo implementa inventory.Engine.
type StockAdjuster interface {
	ApplyInTx(ctx context.Context, repos repository.Repositories, in inventory.AdjustInput, batchID string) (*inventory.AdjustResult, error)
}
