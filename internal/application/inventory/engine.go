// Package inventory contiene el motor de inventario: el único componente que escribe
// el stock de un producto, siempre junto a un movimiento en el libro y en la misma transacción.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	dominv "github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// AdjustInput entrada de un ajuste de stock.
type AdjustInput struct {
	ProductID int64
	Quantity  int
	Direction string // entity.MovementEntry | entity.MovementExit
	Note      string
	// UnitCost costo unitario de una entrada (compra). Si viene, recalcula el costo promedio.
	UnitCost *decimal.Decimal
	// Reversal entrada que devuelve una salida ya registrada en el libro (anulación de venta).
	// Se admite aunque el producto haya dejado de controlar stock.
	Reversal bool
}

// AdjustResult stock resultante y movimiento generado.
type AdjustResult struct {
	NewStock   int
	MovementID int64
	CostPrice  decimal.Decimal
}

// Engine motor de inventario.
type Engine struct {
	txRunner  ports.TxRunner
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	log       zerolog.Logger
}

// NewEngine construye el motor. products y movements se usan solo para lecturas fuera de tx.
func NewEngine(
	txRunner ports.TxRunner,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		txRunner:  txRunner,
		products:  products,
		movements: movements,
		log:       log.With().Str("component", "inventory").Logger(),
	}
}

// AdjustStock aplica una entrada o salida manual en su propia transacción.
func (e *Engine) AdjustStock(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if err := validateAdjust(in); err != nil {
		return nil, err
	}
	batchID := uuid.New().String()

	var res *AdjustResult
	err := e.txRunner.Run(ctx, func(repos repository.Repositories) error {
		r, err := e.ApplyInTx(ctx, repos, in, batchID)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		e.log.Warn().Err(err).
			Int64("product_id", in.ProductID).
			Str("direction", in.Direction).
			Int("quantity", in.Quantity).
			Msg("ajuste de stock rechazado")
		return nil, err
	}
	e.log.Info().
		Int64("product_id", in.ProductID).
		Str("direction", in.Direction).
		Int("quantity", in.Quantity).
		Int("new_stock", res.NewStock).
		Msg("stock ajustado")
	return res, nil
}

// ApplyInTx ejecuta el ajuste con los repositorios de la transacción del caller.
// Si devuelve error el caller debe abortar su transacción (rollback).
// batchID agrupa los movimientos de una misma operación (ej: todas las líneas de una venta).
func (e *Engine) ApplyInTx(ctx context.Context, repos repository.Repositories, in AdjustInput, batchID string) (*AdjustResult, error) {
	if err := validateAdjust(in); err != nil {
		return nil, err
	}
	// Bloquea la fila del producto (SELECT FOR UPDATE en PostgreSQL)
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}
	if !product.TrackStock && !in.Reversal {
		return nil, domain.Invalid("el producto %d no controla stock", in.ProductID)
	}

	newStock := product.CurrentStock + in.Quantity
	if in.Direction == entity.MovementExit {
		newStock = product.CurrentStock - in.Quantity
	}
	if newStock < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			Available: product.CurrentStock,
			Requested: in.Quantity,
		}
	}

	cost := product.CostPrice
	if in.UnitCost != nil {
		cost = dominv.WeightedAverageCost(product.CurrentStock, product.CostPrice, in.Quantity, *in.UnitCost)
		if err := repos.Products.UpdateCost(ctx, in.ProductID, cost); err != nil {
			return nil, err
		}
	}
	if err := repos.Products.UpdateStock(ctx, in.ProductID, newStock); err != nil {
		return nil, err
	}
	note := in.Note
	if note == "" {
		note = "ajuste manual (" + in.Direction + ")"
	}
	mov := &entity.StockMovement{
		ProductID: in.ProductID,
		Kind:      in.Direction,
		Quantity:  in.Quantity,
		Notes:     note,
		BatchID:   batchID,
		CreatedAt: time.Now().UTC(),
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return &AdjustResult{NewStock: newStock, MovementID: mov.ID, CostPrice: cost}, nil
}

// ListMovements lista el libro de un producto (más recientes primero).
func (e *Engine) ListMovements(ctx context.Context, productID int64, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if err := e.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := e.movements.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Audit recalcula el stock desde el libro y lo compara con el contador del producto.
// Todo producto creado por este sistema cumple CurrentStock == Σ entradas − Σ salidas.
func (e *Engine) Audit(ctx context.Context, productID int64) (*dto.StockAuditResponse, error) {
	product, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	totals, err := e.movements.TotalsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	ledger := totals.Entries - totals.Exits
	return &dto.StockAuditResponse{
		ProductID:    productID,
		CurrentStock: product.CurrentStock,
		Entries:      totals.Entries,
		Exits:        totals.Exits,
		LedgerStock:  ledger,
		Movements:    totals.Count,
		Consistent:   ledger == int64(product.CurrentStock),
	}, nil
}

func (e *Engine) ensureProduct(ctx context.Context, productID int64) error {
	p, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	return nil
}

func validateAdjust(in AdjustInput) error {
	if in.ProductID <= 0 {
		return domain.Invalid("product_id requerido")
	}
	if in.Quantity <= 0 {
		return domain.Invalid("la cantidad debe ser un entero positivo")
	}
	if in.Direction != entity.MovementEntry && in.Direction != entity.MovementExit {
		return domain.Invalid("dirección %q no soportada", in.Direction)
	}
	if in.Reversal && in.Direction != entity.MovementEntry {
		return domain.Invalid("una reversión solo puede ser una entrada")
	}
	if in.UnitCost != nil {
		if in.Direction != entity.MovementEntry {
			return domain.Invalid("el costo unitario solo aplica a entradas")
		}
		if in.UnitCost.IsNegative() {
			return domain.Invalid("el costo unitario no puede ser negativo")
		}
	}
	return nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		BatchID:   m.BatchID,
		CreatedAt: m.CreatedAt,
	}
}
