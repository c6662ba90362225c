package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesStats agregados de ventas en un período.
type SalesStats struct {
	TotalSales    int
	Revenue       decimal.Decimal
	AverageTicket decimal.Decimal
}

// ProductSalesRow resultado crudo del reporte por producto.
type ProductSalesRow struct {
	ProductID        int64
	ProductName      string
	Barcode          string
	CategoryName     string
	QuantitySold     int64
	Revenue          decimal.Decimal
	AverageUnitPrice decimal.Decimal
}

// CategorySalesRow resultado crudo del reporte por categoría.
type CategorySalesRow struct {
	CategoryID   *int64 // nil para productos sin categoría
	CategoryName string
	ProductsSold int64
	QuantitySold int64
	Revenue      decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre ventas e ítems.
// Las implementaciones nunca modifican datos. Los rangos son [start, end).
type ReportRepository interface {
	SalesStats(ctx context.Context, start, end time.Time) (SalesStats, error)
	SalesByProduct(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesRow, error)
	SalesByCategory(ctx context.Context, start, end time.Time) ([]CategorySalesRow, error)
	// SaleTimes devuelve fecha y total de cada venta del rango; el agrupado por día
	// lo hace el caso de uso en la zona horaria local.
	SaleTimes(ctx context.Context, start, end time.Time) ([]SaleTotalAt, error)
}

// SaleTotalAt fecha y total de una venta.
type SaleTotalAt struct {
	CreatedAt  time.Time
	TotalValue decimal.Decimal
}
