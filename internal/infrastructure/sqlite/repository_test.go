package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/Inventario-pos/internal/testutil"
)

func TestMigrate_Idempotente(t *testing.T) {
	db := testutil.OpenDB(t)
	require.NoError(t, sqlite.Migrate(db))
	require.NoError(t, sqlite.Migrate(db))
}

func TestCategory_CreateIfAbsentDevuelveExistente(t *testing.T) {
	repos := sqlite.NewRepositories(testutil.OpenDB(t))
	ctx := context.Background()

	c1, inserted, err := repos.Categories.CreateIfAbsent(ctx, &entity.Category{Name: "Ropa"})
	require.NoError(t, err)
	assert.True(t, inserted)

	c2, inserted, err := repos.Categories.CreateIfAbsent(ctx, &entity.Category{Name: "Ropa", Description: "otra"})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, c1.ID, c2.ID)

	byName, err := repos.Categories.GetByName(ctx, "Ropa")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, c1.ID, byName.ID)

	missing, err := repos.Categories.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProduct_ValoresCeroSePersisten(t *testing.T) {
	repos := sqlite.NewRepositories(testutil.OpenDB(t))
	ctx := context.Background()

	p := &entity.Product{
		Name:       "Consultoría",
		SalePrice:  decimal.RequireFromString("80.00"),
		MinStock:   0,
		Kind:       entity.ProductKindService,
		Unit:       "h",
		TrackStock: false,
	}
	require.NoError(t, repos.Products.Create(ctx, p))

	got, err := repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Consultoría", got.Name)
	assert.Equal(t, "h", got.Unit)
	assert.False(t, got.TrackStock)
	assert.Equal(t, 0, got.MinStock)
	assert.Nil(t, got.Barcode)
	assert.True(t, got.SalePrice.Equal(decimal.RequireFromString("80")))

	err = repos.Products.UpdateStock(ctx, 9999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_LecturaCompleta(t *testing.T) {
	repos := sqlite.NewRepositories(testutil.OpenDB(t))
	ctx := context.Background()

	cat := &entity.Category{Name: "Alimentos"}
	require.NoError(t, repos.Categories.Create(ctx, cat))
	barcode := "7890000000001"
	p := &entity.Product{
		Barcode:     &barcode,
		Name:        "Café 500g",
		Description: "tostado",
		CostPrice:   decimal.RequireFromString("8.40"),
		SalePrice:   decimal.RequireFromString("12.90"),
		MinStock:    5,
		CategoryID:  &cat.ID,
		Kind:        entity.ProductKindGood,
		Unit:        "un",
		TrackStock:  true,
	}
	require.NoError(t, repos.Products.Create(ctx, p))
	require.NoError(t, repos.Products.UpdateStock(ctx, p.ID, 7))

	for name, get := range map[string]func() (*entity.Product, error){
		"GetByID":      func() (*entity.Product, error) { return repos.Products.GetByID(ctx, p.ID) },
		"GetForUpdate": func() (*entity.Product, error) { return repos.Products.GetForUpdate(ctx, p.ID) },
		"GetByBarcode": func() (*entity.Product, error) { return repos.Products.GetByBarcode(ctx, barcode) },
	} {
		got, err := get()
		require.NoError(t, err, name)
		require.NotNil(t, got, name)
		assert.Equal(t, p.ID, got.ID, name)
		assert.Equal(t, "Café 500g", got.Name, name)
		assert.Equal(t, "tostado", got.Description, name)
		assert.Equal(t, barcode, got.BarcodeValue(), name)
		assert.True(t, got.CostPrice.Equal(decimal.RequireFromString("8.40")), name)
		assert.True(t, got.SalePrice.Equal(decimal.RequireFromString("12.90")), name)
		assert.Equal(t, 7, got.CurrentStock, name)
		assert.Equal(t, 5, got.MinStock, name)
		assert.True(t, got.TrackStock, name)
		assert.Equal(t, entity.ProductKindGood, got.Kind, name)
		require.NotNil(t, got.CategoryID, name)
		assert.Equal(t, cat.ID, *got.CategoryID, name)
		assert.Equal(t, "Alimentos", got.CategoryName, name)
	}
}

func TestProduct_BusquedaIgnoraMayusculasAcentuadas(t *testing.T) {
	repos := sqlite.NewRepositories(testutil.OpenDB(t))
	ctx := context.Background()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		Name: "Audífonos bluetooth", SalePrice: decimal.RequireFromString("99"),
		Kind: entity.ProductKindGood, Unit: "un", TrackStock: true,
	}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		Name: "Cable 100% cobre", SalePrice: decimal.RequireFromString("5"),
		Kind: entity.ProductKindGood, Unit: "un", TrackStock: true,
	}))

	for _, term := range []string{"audífonos", "AUDÍFONOS", "Audífonos", "BLUETOOTH"} {
		got, err := repos.Products.Search(ctx, term)
		require.NoError(t, err)
		require.Len(t, got, 1, "término %q", term)
		assert.Equal(t, "Audífonos bluetooth", got[0].Name)
	}

	got, err := repos.Products.Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cable 100% cobre", got[0].Name)

	got, err = repos.Products.Search(ctx, "%")
	require.NoError(t, err)
	assert.Len(t, got, 1, "el comodín se busca literal")

	// el nombre editado también se encuentra
	p := got[0]
	p.Name = "CABLE ÑANDÚ"
	_, err = repos.Products.Update(ctx, p)
	require.NoError(t, err)
	got, err = repos.Products.Search(ctx, "ñandú")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
}

func TestSale_ListadoEItemsCompletos(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	a := st.CreateProduct(t, "510", "2.50", 10)

	out, err := st.Sales.CreateSale(ctx, dto.CreateSaleRequest{
		PaymentMethod: "pix",
		Notes:         "mesa 4",
		Items:         []dto.SaleItemRequest{{ProductID: a, Quantity: 3}},
	})
	require.NoError(t, err)

	list, err := st.Repos.Sales.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	s := list[0]
	assert.Equal(t, out.ID, s.ID)
	assert.Equal(t, "pix", s.PaymentMethod)
	assert.Equal(t, "mesa 4", s.Notes)
	assert.True(t, s.TotalValue.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, 1, s.ItemCount)
	assert.NotEmpty(t, s.BatchID)
	assert.False(t, s.CreatedAt.IsZero())

	items, err := st.Repos.Sales.ItemsBySale(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	it := items[0]
	assert.NotZero(t, it.ID)
	assert.Equal(t, out.ID, it.SaleID)
	assert.Equal(t, a, it.ProductID)
	assert.Equal(t, 3, it.Quantity)
	assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, it.Subtotal.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, "Producto 510", it.ProductName)
	assert.Equal(t, "510", it.Barcode)

	batch, err := st.Repos.Movements.ListByBatch(ctx, s.BatchID)
	require.NoError(t, err)
	require.Len(t, batch, 1, "la cabecera apunta al lote de sus salidas")
	assert.Equal(t, a, batch[0].ProductID)
}

func TestSale_FechasEnUTCYLibroPorLote(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	a := st.CreateProduct(t, "500", "1", 10)
	b := st.CreateProduct(t, "501", "2", 10)

	out, err := st.Sales.CreateSale(ctx, dto.CreateSaleRequest{
		PaymentMethod: "debit_card",
		Items:         []dto.SaleItemRequest{{ProductID: a, Quantity: 1}, {ProductID: b, Quantity: 2}},
	})
	require.NoError(t, err)

	sale, err := st.Repos.Sales.GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, time.UTC, sale.CreatedAt.Location())
	assert.WithinDuration(t, time.Now(), sale.CreatedAt, time.Minute)

	movs, err := st.Repos.Movements.ListByProduct(ctx, a, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	batch, err := st.Repos.Movements.ListByBatch(ctx, movs[0].BatchID)
	require.NoError(t, err)
	assert.Len(t, batch, 2, "las dos líneas de la venta comparten lote")
	for _, m := range batch {
		assert.Equal(t, entity.MovementExit, m.Kind)
	}

	referenced, err := st.Repos.Products.IsReferenced(ctx, a)
	require.NoError(t, err)
	assert.True(t, referenced)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()

	err := st.Tx.Run(ctx, func(repos repository.Repositories) error {
		if err := repos.Categories.Create(ctx, &entity.Category{Name: "Temporal"}); err != nil {
			return err
		}
		return domain.Invalid("abortar")
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := st.Repos.Categories.GetByName(ctx, "Temporal")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestMovements_FiltroPorFecha(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "502", "1", 5)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, st.Repos.Movements.Create(ctx, &entity.StockMovement{
		ProductID: id, Kind: entity.MovementEntry, Quantity: 1, Notes: "histórico", CreatedAt: past,
	}))

	from := time.Now().Add(-time.Hour)
	movs, err := st.Repos.Movements.ListByProduct(ctx, id, &from, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "stock inicial", movs[0].Notes)

	to := from
	movs, err = st.Repos.Movements.ListByProduct(ctx, id, nil, &to, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "histórico", movs[0].Notes)

	totals, err := st.Repos.Movements.TotalsByProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(6), totals.Entries)
	assert.Equal(t, int64(2), totals.Count)
}
