// Package reports contiene los reportes de ventas y el resumen del dashboard.
// Todas las consultas son de solo lectura.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/catalog"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

const (
	dashboardTopProducts = 5  // productos en el widget del dashboard
	dashboardLowStock    = 10 // alertas de stock bajo en el dashboard
	uncategorized        = "Sin categoría"
)

// ReportUseCase genera reportes sobre ventas y stock.
type ReportUseCase struct {
	repo     repository.ReportRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	repo repository.ReportRepository,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		repo:     repo,
		products: products,
		sales:    sales,
		now:      time.Now,
		log:      log.With().Str("component", "reports").Logger(),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// StatisticsToday cantidad, ingresos y ticket promedio de las ventas de hoy.
func (uc *ReportUseCase) StatisticsToday(ctx context.Context) (*dto.StatisticsDTO, error) {
	now := uc.now()
	return uc.stats(ctx, now, now)
}

// MonthlyRevenue ingresos del mes calendario en curso.
func (uc *ReportUseCase) MonthlyRevenue(ctx context.Context) (*dto.MonthlyRevenueDTO, error) {
	now := uc.now()
	start, end := domain.MonthRange(now)
	s, err := uc.repo.SalesStats(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.MonthlyRevenueDTO{
		Month:      monthLabel(now),
		TotalSales: s.TotalSales,
		Revenue:    s.Revenue.Round(2),
	}, nil
}

// SalesByPeriod ventas entre dos días calendario (ambos incluidos) con sus totales.
func (uc *ReportUseCase) SalesByPeriod(ctx context.Context, start, end time.Time) (*dto.SaleListResponse, error) {
	from, to := domain.DayRange(start, end)
	list, err := uc.sales.List(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(list)), Revenue: decimal.Zero}
	for _, s := range list {
		out.Items = append(out.Items, dto.SaleResponse{
			ID:            s.ID,
			CreatedAt:     s.CreatedAt,
			TotalValue:    s.TotalValue,
			PaymentMethod: s.PaymentMethod,
			Notes:         s.Notes,
			ItemCount:     s.ItemCount,
		})
		out.Revenue = out.Revenue.Add(s.TotalValue)
	}
	out.TotalSales = len(out.Items)
	out.Revenue = out.Revenue.Round(2)
	return out, nil
}

// ByProduct ventas agregadas por producto en el período, mayor ingreso primero.
// limit <= 0 devuelve todos.
func (uc *ReportUseCase) ByProduct(ctx context.Context, start, end time.Time, limit int) ([]dto.ProductReportDTO, error) {
	from, to := domain.DayRange(start, end)
	rows, err := uc.repo.SalesByProduct(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	return toProductReport(rows), nil
}

// ByCategory ventas agregadas por categoría en el período, mayor ingreso primero.
func (uc *ReportUseCase) ByCategory(ctx context.Context, start, end time.Time) ([]dto.CategoryReportDTO, error) {
	from, to := domain.DayRange(start, end)
	rows, err := uc.repo.SalesByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryReportDTO, 0, len(rows))
	for _, r := range rows {
		name := r.CategoryName
		if r.CategoryID == nil || name == "" {
			name = uncategorized
		}
		out = append(out, dto.CategoryReportDTO{
			CategoryID:   r.CategoryID,
			CategoryName: name,
			ProductsSold: r.ProductsSold,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
		})
	}
	return out, nil
}

// DailyRevenue serie diaria de ingresos del período. Los días sin ventas aparecen con cero.
func (uc *ReportUseCase) DailyRevenue(ctx context.Context, start, end time.Time) ([]dto.DailyRevenueDTO, error) {
	from, to := domain.DayRange(start, end)
	sales, err := uc.repo.SaleTimes(ctx, from, to)
	if err != nil {
		return nil, err
	}

	loc := uc.now().Location()
	first := domain.DayStart(from.In(loc))
	last := to.In(loc)

	index := make(map[string]int)
	var out []dto.DailyRevenueDTO
	for d := first; d.Before(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		index[key] = len(out)
		out = append(out, dto.DailyRevenueDTO{Day: key, Revenue: decimal.Zero})
	}
	for _, s := range sales {
		i, ok := index[s.CreatedAt.In(loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		out[i].TotalSales++
		out[i].Revenue = out[i].Revenue.Add(s.TotalValue)
	}
	for i := range out {
		out[i].Revenue = out[i].Revenue.Round(2)
	}
	return out, nil
}

// Dashboard construye el resumen del punto de venta.
//
// Cuatro consultas en paralelo:
//  1. SalesStats(hoy)           → Today
//  2. SalesStats(mes)           → MonthlyRevenue
//  3. SalesByProduct(mes, top)  → TopProducts
//  4. ListLowStock              → LowStock
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart, todayEnd := domain.DayRange(now, now)
	monthStart, monthEnd := domain.MonthRange(now)

	type statsResult struct {
		stats repository.SalesStats
		err   error
	}
	type topResult struct {
		rows []repository.ProductSalesRow
		err  error
	}
	type lowResult struct {
		items []dto.ProductResponse
		err   error
	}

	todayCh := make(chan statsResult, 1)
	monthCh := make(chan statsResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		s, err := uc.repo.SalesStats(ctx, todayStart, todayEnd)
		todayCh <- statsResult{s, err}
	}()
	go func() {
		s, err := uc.repo.SalesStats(ctx, monthStart, monthEnd)
		monthCh <- statsResult{s, err}
	}()
	go func() {
		rows, err := uc.repo.SalesByProduct(ctx, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		list, err := uc.products.ListLowStock(ctx)
		if err != nil {
			lowCh <- lowResult{err: err}
			return
		}
		if len(list) > dashboardLowStock {
			list = list[:dashboardLowStock]
		}
		items := make([]dto.ProductResponse, 0, len(list))
		for _, p := range list {
			items = append(items, catalog.ToProductResponse(p))
		}
		lowCh <- lowResult{items: items}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	uc.log.Debug().Dur("elapsed", time.Since(now)).Int("low_stock", len(low.items)).Msg("dashboard generado")
	return &dto.DashboardSummaryDTO{
		Today:          toStatistics(today.stats),
		MonthlyRevenue: month.stats.Revenue.Round(2),
		LowStock:       low.items,
		TopProducts:    toProductReport(top.rows),
		DateLabel:      monthLabel(now),
		GeneratedAt:    now.UTC(),
	}, nil
}

func (uc *ReportUseCase) stats(ctx context.Context, start, end time.Time) (*dto.StatisticsDTO, error) {
	from, to := domain.DayRange(start, end)
	s, err := uc.repo.SalesStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := toStatistics(s)
	return &out, nil
}

func toStatistics(s repository.SalesStats) dto.StatisticsDTO {
	return dto.StatisticsDTO{
		TotalSales:    s.TotalSales,
		Revenue:       s.Revenue.Round(2),
		AverageTicket: s.AverageTicket.Round(2),
	}
}

func toProductReport(rows []repository.ProductSalesRow) []dto.ProductReportDTO {
	out := make([]dto.ProductReportDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductReportDTO{
			ProductID:        r.ProductID,
			ProductName:      r.ProductName,
			Barcode:          r.Barcode,
			CategoryName:     r.CategoryName,
			QuantitySold:     r.QuantitySold,
			Revenue:          r.Revenue.Round(2),
			AverageUnitPrice: r.AverageUnitPrice.Round(2),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
