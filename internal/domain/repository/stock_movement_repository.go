package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// LedgerTotals sumas de cantidades por tipo para un producto.
type LedgerTotals struct {
	Entries int64
	Exits   int64
	Count   int64
}

// StockMovementRepository puerto del libro de movimientos (append-only: no hay Update ni Delete).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error)
	TotalsByProduct(ctx context.Context, productID int64) (LedgerTotals, error)
}
