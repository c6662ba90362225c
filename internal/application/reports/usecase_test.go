package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/testutil"
)

// fixedNow mediodía del 15 de marzo de 2026 en la zona local.
var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)

type line struct {
	productID int64
	qty       int
	price     string
}

// insertSale registra una venta con fecha arbitraria directamente en el repositorio.
func insertSale(t *testing.T, st *testutil.Stack, at time.Time, lines ...line) {
	t.Helper()
	ctx := context.Background()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.RequireFromString(l.price).Mul(decimal.NewFromInt(int64(l.qty))))
	}
	sale := &entity.Sale{CreatedAt: at.UTC(), TotalValue: total, PaymentMethod: "cash"}
	require.NoError(t, st.Repos.Sales.Create(ctx, sale))
	for _, l := range lines {
		price := decimal.RequireFromString(l.price)
		require.NoError(t, st.Repos.Sales.CreateItem(ctx, &entity.SaleItem{
			SaleID:    sale.ID,
			ProductID: l.productID,
			Quantity:  l.qty,
			UnitPrice: price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(l.qty))),
		}))
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStatisticsToday_SinVentas(t *testing.T) {
	st := testutil.NewStack(t, nil)
	st.Reports.WithClock(func() time.Time { return fixedNow })

	stats, err := st.Reports.StatisticsToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSales)
	assert.True(t, stats.Revenue.IsZero())
	assert.True(t, stats.AverageTicket.IsZero())
}

func TestStatisticsToday_YMes(t *testing.T) {
	st := testutil.NewStack(t, nil)
	st.Reports.WithClock(func() time.Time { return fixedNow })
	p := st.CreateProduct(t, "400", "10.00", 0)

	insertSale(t, st, fixedNow.Add(-2*time.Hour), line{p, 1, "10.00"})
	insertSale(t, st, fixedNow.Add(-1*time.Hour), line{p, 2, "10.00"})
	insertSale(t, st, fixedNow.AddDate(0, 0, -3), line{p, 5, "10.00"})
	insertSale(t, st, fixedNow.AddDate(0, -1, 0), line{p, 9, "10.00"})

	stats, err := st.Reports.StatisticsToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSales)
	assert.True(t, stats.Revenue.Equal(dec("30")), "revenue %s", stats.Revenue)
	assert.True(t, stats.AverageTicket.Equal(dec("15")), "ticket %s", stats.AverageTicket)

	month, err := st.Reports.MonthlyRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Marzo 2026", month.Month)
	assert.Equal(t, 3, month.TotalSales)
	assert.True(t, month.Revenue.Equal(dec("80")), "mes %s", month.Revenue)
}

func TestByProductYByCategory(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()

	cat, err := st.Categories.Create(ctx, dto.CategoryRequest{Name: "Papelería"})
	require.NoError(t, err)
	price := dec("2.50")
	code := "401"
	pen, err := st.Products.Create(ctx, dto.CreateProductRequest{Barcode: &code, Name: "Bolígrafo", SalePrice: &price, CategoryID: &cat.ID})
	require.NoError(t, err)
	bag := st.CreateProduct(t, "402", "20.00", 0)

	insertSale(t, st, fixedNow, line{pen, 10, "2.50"}, line{bag, 1, "20.00"})
	insertSale(t, st, fixedNow.Add(time.Hour), line{pen, 4, "3.00"})

	rows, err := st.Reports.ByProduct(ctx, fixedNow, fixedNow, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bolígrafo", rows[0].ProductName)
	assert.Equal(t, int64(14), rows[0].QuantitySold)
	assert.True(t, rows[0].Revenue.Equal(dec("37")), "revenue %s", rows[0].Revenue)
	assert.Equal(t, "Papelería", rows[0].CategoryName)

	rows, err = st.Reports.ByProduct(ctx, fixedNow, fixedNow, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	cats, err := st.Reports.ByCategory(ctx, fixedNow, fixedNow)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	names := []string{cats[0].CategoryName, cats[1].CategoryName}
	assert.ElementsMatch(t, []string{"Papelería", "Sin categoría"}, names)
	for _, c := range cats {
		if c.CategoryID == nil {
			assert.True(t, c.Revenue.Equal(dec("20")))
			assert.Equal(t, int64(1), c.QuantitySold)
		}
	}

	rows, err = st.Reports.ByProduct(ctx, fixedNow.AddDate(0, 0, 1), fixedNow.AddDate(0, 0, 2), 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDailyRevenue_RellenaDiasSinVentas(t *testing.T) {
	st := testutil.NewStack(t, nil)
	st.Reports.WithClock(func() time.Time { return fixedNow })
	p := st.CreateProduct(t, "403", "5.00", 0)

	insertSale(t, st, fixedNow.AddDate(0, 0, -2), line{p, 1, "5.00"})
	insertSale(t, st, fixedNow, line{p, 2, "5.00"})
	insertSale(t, st, fixedNow.Add(time.Minute), line{p, 1, "5.00"})

	days, err := st.Reports.DailyRevenue(context.Background(), fixedNow.AddDate(0, 0, -3), fixedNow)
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, "2026-03-12", days[0].Day)
	assert.Equal(t, 0, days[0].TotalSales)
	assert.Equal(t, 1, days[1].TotalSales)
	assert.True(t, days[1].Revenue.Equal(dec("5")))
	assert.Equal(t, 0, days[2].TotalSales)
	assert.Equal(t, "2026-03-15", days[3].Day)
	assert.Equal(t, 2, days[3].TotalSales)
	assert.True(t, days[3].Revenue.Equal(dec("15")))
}

func TestSalesByPeriod(t *testing.T) {
	st := testutil.NewStack(t, nil)
	p := st.CreateProduct(t, "404", "1.25", 0)
	insertSale(t, st, fixedNow, line{p, 2, "1.25"})
	insertSale(t, st, fixedNow.AddDate(0, 0, -1), line{p, 1, "1.25"})

	// Rango invertido: se intercambia
	list, err := st.Reports.SalesByPeriod(context.Background(), fixedNow, fixedNow.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalSales)
	assert.True(t, list.Revenue.Equal(dec("3.75")))
}

func TestDashboard(t *testing.T) {
	st := testutil.NewStack(t, nil)
	st.Reports.WithClock(func() time.Time { return fixedNow })
	a := st.CreateProduct(t, "405", "10.00", 100)
	b := st.CreateProduct(t, "406", "3.00", 2)

	insertSale(t, st, fixedNow, line{a, 1, "10.00"}, line{b, 5, "3.00"})
	insertSale(t, st, fixedNow.AddDate(0, 0, -5), line{a, 3, "10.00"})

	d, err := st.Reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Today.TotalSales)
	assert.True(t, d.Today.Revenue.Equal(dec("25")))
	assert.True(t, d.MonthlyRevenue.Equal(dec("55")), "mes %s", d.MonthlyRevenue)
	require.Len(t, d.TopProducts, 2)
	assert.Equal(t, a, d.TopProducts[0].ProductID)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, b, d.LowStock[0].ID)
	assert.Equal(t, "Marzo 2026", d.DateLabel)
}
