package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de ventas.
// SQLite devuelve los agregados como REAL; el caso de uso redondea a 2 decimales.
type ReportRepo struct {
	db *gorm.DB
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) SalesStats(ctx context.Context, start, end time.Time) (repository.SalesStats, error) {
	var s repository.SalesStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total_sales,
		       COALESCE(SUM(total_value), 0) AS revenue,
		       COALESCE(AVG(total_value), 0) AS average_ticket
		FROM sales
		WHERE created_at >= ? AND created_at < ?`, start.UTC(), end.UTC(),
	).Scan(&s).Error
	if err != nil {
		return s, domain.Storage("reports.SalesStats", err)
	}
	return s, nil
}

// SalesByProduct limit <= 0 no limita.
func (r *ReportRepo) SalesByProduct(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	if limit <= 0 {
		limit = -1
	}
	var out []repository.ProductSalesRow
	err := r.db.WithContext(ctx).Raw(`
	SELECT
	    p.id                    AS product_id,
	    p.name                  AS product_name,
	    COALESCE(p.barcode, '') AS barcode,
	    COALESCE(c.name, '')    AS category_name,
	    SUM(si.quantity)        AS quantity_sold,
	    SUM(si.subtotal)        AS revenue,
	    AVG(si.unit_price)      AS average_unit_price
	FROM sale_items si
	JOIN sales s           ON s.id = si.sale_id
	JOIN products p        ON p.id = si.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE s.created_at >= ? AND s.created_at < ?
	GROUP BY p.id, p.name, p.barcode, c.name
	ORDER BY revenue DESC, p.name
	LIMIT ?`, start.UTC(), end.UTC(), limit,
	).Scan(&out).Error
	if err != nil {
		return nil, domain.Storage("reports.SalesByProduct", err)
	}
	return out, nil
}

func (r *ReportRepo) SalesByCategory(ctx context.Context, start, end time.Time) ([]repository.CategorySalesRow, error) {
	var out []repository.CategorySalesRow
	err := r.db.WithContext(ctx).Raw(`
	SELECT
	    c.id                          AS category_id,
	    COALESCE(c.name, '')          AS category_name,
	    COUNT(DISTINCT si.product_id) AS products_sold,
	    SUM(si.quantity)              AS quantity_sold,
	    SUM(si.subtotal)              AS revenue
	FROM sale_items si
	JOIN sales s           ON s.id = si.sale_id
	JOIN products p        ON p.id = si.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE s.created_at >= ? AND s.created_at < ?
	GROUP BY c.id, c.name
	ORDER BY revenue DESC, category_name`, start.UTC(), end.UTC(),
	).Scan(&out).Error
	if err != nil {
		return nil, domain.Storage("reports.SalesByCategory", err)
	}
	return out, nil
}

func (r *ReportRepo) SaleTimes(ctx context.Context, start, end time.Time) ([]repository.SaleTotalAt, error) {
	var ms []saleModel
	err := r.db.WithContext(ctx).
		Select("created_at", "total_value").
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Order("created_at").
		Find(&ms).Error
	if err != nil {
		return nil, domain.Storage("reports.SaleTimes", err)
	}
	out := make([]repository.SaleTotalAt, 0, len(ms))
	for _, m := range ms {
		out = append(out, repository.SaleTotalAt{CreatedAt: m.CreatedAt, TotalValue: m.TotalValue})
	}
	return out, nil
}
