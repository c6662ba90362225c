package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/testutil"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func TestCreateProduct_ValoresPorDefecto(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()

	id, err := st.Products.Create(ctx, dto.CreateProductRequest{Barcode: str("  300  "), Name: " Arroz 1kg ", SalePrice: price("5.90")})
	require.NoError(t, err)

	p, err := st.Products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Arroz 1kg", p.Name)
	require.NotNil(t, p.Barcode)
	assert.Equal(t, "300", *p.Barcode)
	assert.Equal(t, entity.ProductKindGood, p.Kind)
	assert.True(t, p.TrackStock)
	assert.Equal(t, entity.DefaultMinStock, p.MinStock)
	assert.Equal(t, entity.DefaultUnit, p.Unit)
	assert.Equal(t, 0, p.CurrentStock)
	assert.True(t, p.LowStock)
}

func TestCreateProduct_StockInicialEntraAlLibro(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "301", "2", 25)

	audit, err := st.Engine.Audit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 25, audit.CurrentStock)
	assert.Equal(t, int64(1), audit.Movements)
	assert.True(t, audit.Consistent)
}

func TestCreateProduct_Rechazos(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	st.CreateProduct(t, "302", "1", 0)

	_, err := st.Products.Create(ctx, dto.CreateProductRequest{Barcode: str("302"), Name: "Otro", SalePrice: price("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "código duplicado")

	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Name: "Sin precio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio requerido")

	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Name: "Negativo", SalePrice: price("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Name: "Servicio", SalePrice: price("10"), Kind: "service", InitialStock: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "servicio con stock")

	missing := int64(99)
	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Name: "Huérfano", SalePrice: price("1"), CategoryID: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría inexistente")
}

func TestCreateProduct_SinCodigoDeBarras(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()

	// Varios productos sin código conviven (NULL no choca con el índice único)
	for i := 0; i < 2; i++ {
		_, err := st.Products.Create(ctx, dto.CreateProductRequest{Name: "Granel", Barcode: str(" "), SalePrice: price("1")})
		require.NoError(t, err)
	}
	list, err := st.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestUpdateProduct(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "303", "1", 4)

	n, err := st.Products.Update(ctx, 9999, dto.UpdateProductRequest{Name: "x", SalePrice: price("1")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	off := false
	_, err = st.Products.Update(ctx, id, dto.UpdateProductRequest{Barcode: str("303"), Name: "x", SalePrice: price("1"), TrackStock: &off})
	assert.ErrorIs(t, err, domain.ErrConflict, "apagar control con stock")

	min := 2
	n, err = st.Products.Update(ctx, id, dto.UpdateProductRequest{Barcode: str("303"), Name: "Renombrado", SalePrice: price("3.5"), MinStock: &min})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	p, err := st.Products.GetByBarcode(ctx, "303")
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", p.Name)
	assert.Equal(t, 4, p.CurrentStock, "editar no toca el stock")
	assert.False(t, p.LowStock)
}

func TestDeleteProduct(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	withStock := st.CreateProduct(t, "304", "1", 1)
	fresh := st.CreateProduct(t, "305", "1", 0)

	_, err := st.Products.Delete(ctx, withStock)
	assert.ErrorIs(t, err, domain.ErrConflict, "tiene movimientos")

	n, err := st.Products.Delete(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.Products.Delete(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = st.Products.GetByID(ctx, fresh)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLowStock_MasCriticoPrimero(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	st.CreateProduct(t, "306", "1", 8)
	st.CreateProduct(t, "307", "1", 2)
	st.CreateProduct(t, "308", "1", 50)
	st.CreateService(t, "309", "1")

	list, err := st.Products.ListLowStock(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "307", *list.Items[0].Barcode)
	assert.Equal(t, "306", *list.Items[1].Barcode)
}

func TestSearchYCategorias(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()

	cat, err := st.Categories.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	_, err = st.Categories.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Barcode: str("310"), Name: "Jugo de Naranja", SalePrice: price("3"), CategoryID: &cat.ID})
	require.NoError(t, err)
	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Barcode: str("311"), Name: "Pan 100%", SalePrice: price("1")})
	require.NoError(t, err)

	res, err := st.Products.Search(ctx, "naranja")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Bebidas", res.Items[0].CategoryName)

	res, err = st.Products.Search(ctx, "100%")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total, "el comodín se escapa")

	res, err = st.Products.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total, "término vacío lista todo")

	res, err = st.Products.ListByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	n, err := st.Categories.Update(ctx, cat.ID, dto.CategoryRequest{Name: "Bebidas frías"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, err := st.Categories.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bebidas frías", got.Name)
}

func TestSuppliers(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()

	s, err := st.Suppliers.Create(ctx, dto.SupplierRequest{Name: "Distribuidora Sul", Contact: "vendas@sul.com"})
	require.NoError(t, err)

	_, err = st.Products.Create(ctx, dto.CreateProductRequest{Name: "Café", SalePrice: price("12"), SupplierID: &s.ID})
	require.NoError(t, err)

	list, err := st.Suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "vendas@sul.com", list[0].Contact)

	_, err = st.Suppliers.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
