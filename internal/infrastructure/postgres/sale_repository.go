package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas e ítems sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales (total_value, payment_method, notes, created_at, batch_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.TotalValue, s.PaymentMethod, s.Notes, s.CreatedAt, s.BatchID,
	).Scan(&s.ID)
	if err != nil {
		return domain.Storage("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
	).Scan(&it.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("venta %d o producto %d inexistente", it.SaleID, it.ProductID)
		}
		return domain.Storage("insert sale item", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, total_value, payment_method, notes, created_at, batch_id
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.TotalValue, &s.PaymentMethod, &s.Notes, &s.CreatedAt, &s.BatchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get sale", err)
	}
	return &s, nil
}

func (r *SaleRepo) ItemsBySale(ctx context.Context, saleID int64) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.subtotal,
		       p.name, COALESCE(p.barcode, '')
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.id`, saleID)
	if err != nil {
		return nil, domain.Storage("list sale items", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.Subtotal, &it.ProductName, &it.Barcode); err != nil {
			return nil, domain.Storage("scan sale item", err)
		}
		list = append(list, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list sale items", err)
	}
	return list, nil
}

func (r *SaleRepo) DeleteItems(ctx context.Context, saleID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, domain.Storage("delete sale items", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *SaleRepo) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return 0, domain.Storage("delete sale", err)
	}
	return cmd.RowsAffected(), nil
}

// List ventas en [from, to) con su cantidad de ítems, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.total_value, s.payment_method, s.notes, s.created_at, s.batch_id, COUNT(si.id)
		FROM sales s
		LEFT JOIN sale_items si ON si.sale_id = s.id
		WHERE ($1::timestamptz IS NULL OR s.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR s.created_at < $2)
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC`, from, to)
	if err != nil {
		return nil, domain.Storage("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.TotalValue, &s.PaymentMethod, &s.Notes, &s.CreatedAt, &s.BatchID, &s.ItemCount); err != nil {
			return nil, domain.Storage("scan sale", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list sales", err)
	}
	return list, nil
}
