package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatisticsDTO indicadores de ventas de un período (hoy por defecto).
type StatisticsDTO struct {
	TotalSales    int             `json:"total_sales"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// MonthlyRevenueDTO ingresos del mes calendario en curso.
type MonthlyRevenueDTO struct {
	Month      string          `json:"month"` // ej: "Octubre 2026"
	TotalSales int             `json:"total_sales"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProductReportDTO ventas agregadas de un producto.
type ProductReportDTO struct {
	ProductID        int64           `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Barcode          string          `json:"barcode"`
	CategoryName     string          `json:"category_name"`
	QuantitySold     int64           `json:"quantity_sold"`
	Revenue          decimal.Decimal `json:"revenue"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
}

// CategoryReportDTO ventas agregadas de una categoría.
type CategoryReportDTO struct {
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	ProductsSold int64           `json:"products_sold"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DailyRevenueDTO punto de la serie diaria de ingresos.
type DailyRevenueDTO struct {
	Day        string          `json:"day"` // 2006-01-02
	TotalSales int             `json:"total_sales"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
type DashboardSummaryDTO struct {
	Today          StatisticsDTO      `json:"today"`
	MonthlyRevenue decimal.Decimal    `json:"monthly_revenue"`
	LowStock       []ProductResponse  `json:"low_stock"`
	TopProducts    []ProductReportDTO `json:"top_products"`
	DateLabel      string             `json:"date_label"`
	GeneratedAt    time.Time          `json:"generated_at"`
}
