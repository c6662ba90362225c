package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre SQLite. Solo inserta y lee.
type StockMovementRepo struct {
	db *gorm.DB
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(db *gorm.DB) *StockMovementRepo {
	return &StockMovementRepo{db: db}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	row := stockMovementModel{
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		BatchID:   m.BatchID,
		CreatedAt: m.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Storage("insert stock movement", err)
	}
	m.ID = row.ID
	return nil
}

// ListByProduct movimientos del producto en [from, to), más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	q := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if from != nil {
		q = q.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("created_at < ?", to.UTC())
	}
	return r.find(q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset))
}

func (r *StockMovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error) {
	return r.find(r.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("id"))
}

func (r *StockMovementRepo) TotalsByProduct(ctx context.Context, productID int64) (repository.LedgerTotals, error) {
	var t repository.LedgerTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'entry' THEN quantity END), 0),
			COALESCE(SUM(CASE WHEN kind = 'exit' THEN quantity END), 0),
			COUNT(*)
		FROM stock_movements WHERE product_id = ?`, productID,
	).Row().Scan(&t.Entries, &t.Exits, &t.Count)
	if err != nil {
		return t, domain.Storage("ledger totals", err)
	}
	return t, nil
}

func (r *StockMovementRepo) find(q *gorm.DB) ([]*entity.StockMovement, error) {
	var ms []stockMovementModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, domain.Storage("list stock movements", err)
	}
	out := make([]*entity.StockMovement, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toEntity())
	}
	return out, nil
}
