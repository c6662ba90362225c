package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/testutil"
)

func TestAdjustStock_SalidaYEntrada(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "100", "10", 50)

	res, err := st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 10, Direction: entity.MovementExit})
	require.NoError(t, err)
	assert.Equal(t, 40, res.NewStock)
	assert.NotZero(t, res.MovementID)

	res, err = st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 5, Direction: entity.MovementEntry, Note: "compra"})
	require.NoError(t, err)
	assert.Equal(t, 45, res.NewStock)
	assert.Equal(t, 45, st.Stock(t, id))
}

func TestAdjustStock_SalidaMayorAlStock_NoCambiaNada(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "101", "10", 40)

	_, err := st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 45, Direction: entity.MovementExit})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 40, ise.Available)
	assert.Equal(t, 45, ise.Requested)

	assert.Equal(t, 40, st.Stock(t, id))
	movs, err := st.Engine.ListMovements(ctx, id, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo el stock inicial")
}

func TestAdjustStock_SalidaExactaDejaCero(t *testing.T) {
	st := testutil.NewStack(t, nil)
	id := st.CreateProduct(t, "102", "10", 7)

	res, err := st.Engine.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: id, Quantity: 7, Direction: entity.MovementExit})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewStock)
}

func TestAdjustStock_EntradasInvalidas(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "103", "10", 5)
	svc := st.CreateService(t, "104", "30")

	cases := []struct {
		name string
		in   inventory.AdjustInput
		want error
	}{
		{"cantidad cero", inventory.AdjustInput{ProductID: id, Quantity: 0, Direction: entity.MovementEntry}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.AdjustInput{ProductID: id, Quantity: -3, Direction: entity.MovementExit}, domain.ErrInvalidInput},
		{"dirección desconocida", inventory.AdjustInput{ProductID: id, Quantity: 1, Direction: "transfer"}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.AdjustInput{ProductID: 9999, Quantity: 1, Direction: entity.MovementEntry}, domain.ErrNotFound},
		{"servicio sin stock", inventory.AdjustInput{ProductID: svc, Quantity: 1, Direction: entity.MovementEntry}, domain.ErrInvalidInput},
		{"reversión como salida", inventory.AdjustInput{ProductID: id, Quantity: 1, Direction: entity.MovementExit, Reversal: true}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := st.Engine.AdjustStock(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 5, st.Stock(t, id))
}

func TestAudit_LibroCuadraConStock(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "105", "10", 20)

	for _, in := range []inventory.AdjustInput{
		{ProductID: id, Quantity: 3, Direction: entity.MovementExit},
		{ProductID: id, Quantity: 8, Direction: entity.MovementEntry},
		{ProductID: id, Quantity: 11, Direction: entity.MovementExit},
	} {
		_, err := st.Engine.AdjustStock(ctx, in)
		require.NoError(t, err)
	}

	audit, err := st.Engine.Audit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 14, audit.CurrentStock)
	assert.Equal(t, int64(28), audit.Entries)
	assert.Equal(t, int64(14), audit.Exits)
	assert.Equal(t, int64(4), audit.Movements)
	assert.True(t, audit.Consistent)

	_, err = st.Engine.Audit(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_MasRecientesPrimeroYPaginado(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "106", "10", 10)
	_, err := st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 2, Direction: entity.MovementExit, Note: "rotura"})
	require.NoError(t, err)

	movs, err := st.Engine.ListMovements(ctx, id, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "rotura", movs[0].Notes)
	assert.Equal(t, "stock inicial", movs[1].Notes)

	movs, err = st.Engine.ListMovements(ctx, id, nil, nil, dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementEntry, movs[0].Kind)

	_, err = st.Engine.ListMovements(ctx, 9999, nil, nil, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_EntradaConCostoRecalculaPromedio(t *testing.T) {
	st := testutil.NewStack(t, nil)
	ctx := context.Background()
	id := st.CreateProduct(t, "107", "20", 0)

	cost := decimal.RequireFromString("10.00")
	res, err := st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 30, Direction: entity.MovementEntry, UnitCost: &cost})
	require.NoError(t, err)
	assert.True(t, res.CostPrice.Equal(cost), "primer costo %s", res.CostPrice)

	cost = decimal.RequireFromString("14.00")
	res, err = st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 10, Direction: entity.MovementEntry, UnitCost: &cost})
	require.NoError(t, err)
	assert.True(t, res.CostPrice.Equal(decimal.RequireFromString("11.00")), "promedio %s", res.CostPrice)

	p, err := st.Products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("11.00")))
	assert.Equal(t, 40, p.CurrentStock)

	// En salidas el costo no aplica
	_, err = st.Engine.AdjustStock(ctx, inventory.AdjustInput{ProductID: id, Quantity: 1, Direction: entity.MovementExit, UnitCost: &cost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
