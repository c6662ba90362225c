package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesStats cantidad, suma y promedio de total_value en [start, end).
func (r *ReportRepo) SalesStats(ctx context.Context, start, end time.Time) (repository.SalesStats, error) {
	var s repository.SalesStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_value), 0), COALESCE(AVG(total_value), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`, start, end,
	).Scan(&s.TotalSales, &s.Revenue, &s.AverageTicket)
	if err != nil {
		return s, domain.Storage("reports.SalesStats", err)
	}
	return s, nil
}

// SalesByProduct agrupa ítems vendidos por producto, mayor ingreso primero.
// limit <= 0 no limita.
func (r *ReportRepo) SalesByProduct(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx, `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(p.barcode, '')  AS barcode,
	    COALESCE(c.name, '')     AS category_name,
	    SUM(si.quantity)         AS quantity_sold,
	    SUM(si.subtotal)         AS revenue,
	    AVG(si.unit_price)       AS average_unit_price
	FROM sale_items si
	JOIN sales s          ON s.id = si.sale_id
	JOIN products p       ON p.id = si.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY p.id, p.name, p.barcode, c.name
	ORDER BY revenue DESC, p.name
	LIMIT $3`, start, end, lim)
	if err != nil {
		return nil, domain.Storage("reports.SalesByProduct", err)
	}
	defer rows.Close()

	var out []repository.ProductSalesRow
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.Barcode,
			&row.CategoryName,
			&row.QuantitySold,
			&row.Revenue,
			&row.AverageUnitPrice,
		); err != nil {
			return nil, domain.Storage("reports.SalesByProduct scan", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("reports.SalesByProduct", err)
	}
	return out, nil
}

// SalesByCategory agrupa ítems vendidos por categoría; sin categoría queda con CategoryID nil.
func (r *ReportRepo) SalesByCategory(ctx context.Context, start, end time.Time) ([]repository.CategorySalesRow, error) {
	rows, err := r.q.Query(ctx, `
	SELECT
	    c.id,
	    COALESCE(c.name, '')         AS category_name,
	    COUNT(DISTINCT si.product_id) AS products_sold,
	    SUM(si.quantity)             AS quantity_sold,
	    SUM(si.subtotal)             AS revenue
	FROM sale_items si
	JOIN sales s          ON s.id = si.sale_id
	JOIN products p       ON p.id = si.product_id
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY c.id, c.name
	ORDER BY revenue DESC, category_name`, start, end)
	if err != nil {
		return nil, domain.Storage("reports.SalesByCategory", err)
	}
	defer rows.Close()

	var out []repository.CategorySalesRow
	for rows.Next() {
		var row repository.CategorySalesRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.ProductsSold, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, domain.Storage("reports.SalesByCategory scan", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("reports.SalesByCategory", err)
	}
	return out, nil
}

// SaleTimes fecha y total de cada venta en [start, end).
func (r *ReportRepo) SaleTimes(ctx context.Context, start, end time.Time) ([]repository.SaleTotalAt, error) {
	rows, err := r.q.Query(ctx, `
		SELECT created_at, total_value FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at`, start, end)
	if err != nil {
		return nil, domain.Storage("reports.SaleTimes", err)
	}
	defer rows.Close()
	var out []repository.SaleTotalAt
	for rows.Next() {
		var s repository.SaleTotalAt
		if err := rows.Scan(&s.CreatedAt, &s.TotalValue); err != nil {
			return nil, domain.Storage("reports.SaleTimes scan", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("reports.SaleTimes", err)
	}
	return out, nil
}
