package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (product_id, kind, quantity, notes, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.ProductID, m.Kind, m.Quantity, m.Notes, m.BatchID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return domain.Storage("insert stock movement", err)
	}
	return nil
}

// ListByProduct movimientos del producto en [from, to), más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(ctx, `
		SELECT id, product_id, kind, quantity, notes, batch_id, created_at
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`,
		productID, from, to, limit, offset)
}

func (r *StockMovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `
		SELECT id, product_id, kind, quantity, notes, batch_id, created_at
		FROM stock_movements WHERE batch_id = $1 ORDER BY id`, batchID)
}

func (r *StockMovementRepo) TotalsByProduct(ctx context.Context, productID int64) (repository.LedgerTotals, error) {
	var t repository.LedgerTotals
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE kind = 'entry'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE kind = 'exit'), 0),
			COUNT(*)
		FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&t.Entries, &t.Exits, &t.Count)
	if err != nil {
		return t, domain.Storage("ledger totals", err)
	}
	return t, nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Notes, &m.BatchID, &m.CreatedAt); err != nil {
			return nil, domain.Storage("scan stock movement", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list stock movements", err)
	}
	return list, nil
}
