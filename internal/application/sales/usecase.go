// Package sales registra y anula ventas. Cada operación corre en una única transacción:
// cabecera, ítems y movimientos de stock se confirman o revierten juntos.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	txRunner ports.TxRunner
	repo     repository.SaleRepository
	stock    StockAdjuster
	receipt  ReceiptGenerator
	log      zerolog.Logger
}

// NewSaleUseCase construye el caso de uso. receipt puede ser nil (sin comprobantes).
func NewSaleUseCase(
	txRunner ports.TxRunner,
	repo repository.SaleRepository,
	stock StockAdjuster,
	receipt ReceiptGenerator,
	log zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner: txRunner,
		repo:     repo,
		stock:    stock,
		receipt:  receipt,
		log:      log.With().Str("component", "sales").Logger(),
	}
}

// cartLine línea resuelta: producto leído dentro de la tx y precio congelado.
type cartLine struct {
	product  *entity.Product
	quantity int
	subtotal decimal.Decimal
}

// CreateSale registra la venta del carrito.
//
// El precio unitario de cada línea es el precio de venta vigente del producto al
// momento de vender; cambios posteriores del catálogo no alteran la venta.
// Si cualquier línea falla (producto inexistente o stock insuficiente) no queda
// nada persistido.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("el carrito está vacío")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		lines := make([]cartLine, 0, len(in.Items))
		total := decimal.Zero
		for _, it := range in.Items {
			p, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, it.ProductID)
			}
			subtotal := p.SalePrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(subtotal)
			lines = append(lines, cartLine{product: p, quantity: it.Quantity, subtotal: subtotal})
		}

		sale = &entity.Sale{
			TotalValue:    total,
			PaymentMethod: in.PaymentMethod,
			Notes:         in.Notes,
			CreatedAt:     time.Now().UTC(),
			BatchID:       uuid.New().String(),
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}

		batchID := sale.BatchID
		note := fmt.Sprintf("venta #%d", sale.ID)
		for _, l := range lines {
			item := &entity.SaleItem{
				SaleID:    sale.ID,
				ProductID: l.product.ID,
				Quantity:  l.quantity,
				UnitPrice: l.product.SalePrice,
				Subtotal:  l.subtotal,
			}
			if err := repos.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
			if !l.product.TrackStock {
				continue
			}
			if _, err := uc.stock.ApplyInTx(ctx, repos, inventory.AdjustInput{
				ProductID: l.product.ID,
				Quantity:  l.quantity,
				Direction: entity.MovementExit,
				Note:      note,
			}, batchID); err != nil {
				return err
			}
		}
		sale.ItemCount = len(lines)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int("items", len(in.Items)).Msg("venta rechazada")
		return nil, err
	}

	uc.log.Info().
		Int64("sale_id", sale.ID).
		Str("total", sale.TotalValue.StringFixed(2)).
		Str("payment_method", sale.PaymentMethod).
		Int("items", sale.ItemCount).
		Msg("venta registrada")
	return &dto.CreateSaleResponse{ID: sale.ID, TotalValue: sale.TotalValue}, nil
}

// CancelSale anula una venta: devuelve al stock las salidas que generó y borra ítems y cabecera.
// La venta y sus ítems desaparecen; el libro conserva la salida y la entrada que la revierte.
// Lo que se revierte sale del libro (lote de la venta), no del control de stock actual del producto.
func (uc *SaleUseCase) CancelSale(ctx context.Context, saleID int64) (*dto.CancelSaleResponse, error) {
	var res dto.CancelSaleResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		sale, err := repos.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %d", domain.ErrNotFound, saleID)
		}
		var sold []*entity.StockMovement
		if sale.BatchID != "" {
			if sold, err = repos.Movements.ListByBatch(ctx, sale.BatchID); err != nil {
				return err
			}
		}

		batchID := uuid.New().String()
		note := fmt.Sprintf("anulación venta #%d", saleID)
		for _, m := range sold {
			if m.Kind != entity.MovementExit {
				continue
			}
			if _, err := uc.stock.ApplyInTx(ctx, repos, inventory.AdjustInput{
				ProductID: m.ProductID,
				Quantity:  m.Quantity,
				Direction: entity.MovementEntry,
				Note:      note,
				Reversal:  true,
			}, batchID); err != nil {
				return err
			}
		}

		if res.ItemsReversed, err = repos.Sales.DeleteItems(ctx, saleID); err != nil {
			return err
		}
		res.SaleDeleted, err = repos.Sales.Delete(ctx, saleID)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("sale_id", saleID).Msg("anulación rechazada")
		return nil, err
	}
	uc.log.Info().Int64("sale_id", saleID).Int64("items", res.ItemsReversed).Msg("venta anulada")
	return &res, nil
}

// GetSale devuelve la cabecera y sus ítems con nombre y código de producto.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID int64) (*dto.SaleResponse, error) {
	sale, items, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale)
	out.ItemCount = len(items)
	out.Items = make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Barcode:     it.Barcode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &out, nil
}

// ListAll lista todas las ventas, más recientes primero.
func (uc *SaleUseCase) ListAll(ctx context.Context) (*dto.SaleListResponse, error) {
	return uc.list(ctx, nil, nil)
}

// ListByPeriod lista las ventas entre dos días calendario, ambos incluidos.
func (uc *SaleUseCase) ListByPeriod(ctx context.Context, start, end time.Time) (*dto.SaleListResponse, error) {
	from, to := domain.DayRange(start, end)
	return uc.list(ctx, &from, &to)
}

// Receipt genera el comprobante PDF de una venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, saleID int64) ([]byte, error) {
	if uc.receipt == nil {
		return nil, fmt.Errorf("%w: comprobantes deshabilitados", domain.ErrInvalidInput)
	}
	sale, items, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.ItemCount = len(items)
	return uc.receipt.GenerateReceipt(ctx, ReceiptData{Sale: sale, Items: items})
}

func (uc *SaleUseCase) load(ctx context.Context, saleID int64) (*entity.Sale, []*entity.SaleItem, error) {
	sale, err := uc.repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, fmt.Errorf("%w: venta %d", domain.ErrNotFound, saleID)
	}
	items, err := uc.repo.ItemsBySale(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

func (uc *SaleUseCase) list(ctx context.Context, from, to *time.Time) (*dto.SaleListResponse, error) {
	list, err := uc.repo.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(list)), Revenue: decimal.Zero}
	for _, s := range list {
		out.Items = append(out.Items, toSaleResponse(s))
		out.Revenue = out.Revenue.Add(s.TotalValue)
	}
	out.TotalSales = len(out.Items)
	return out, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		TotalValue:    s.TotalValue,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
		ItemCount:     s.ItemCount,
	}
}
