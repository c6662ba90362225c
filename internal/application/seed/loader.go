// Package seed carga el catálogo de ejemplo. Es idempotente: las categorías se
// identifican por nombre y los productos por código de barras.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// StockAdjuster registra el stock inicial de los productos sembrados.
type StockAdjuster interface {
	ApplyInTx(ctx context.Context, repos repository.Repositories, in inventory.AdjustInput, batchID string) (*inventory.AdjustResult, error)
}

// Result cantidad de registros insertados en una corrida.
type Result struct {
	CategoriesInserted int
	ProductsInserted   int
}

// Loader carga categorías y productos de ejemplo.
type Loader struct {
	txRunner ports.TxRunner
	stock    StockAdjuster
	log      zerolog.Logger
}

// NewLoader construye el loader.
func NewLoader(txRunner ports.TxRunner, stock StockAdjuster, log zerolog.Logger) *Loader {
	return &Loader{txRunner: txRunner, stock: stock, log: log.With().Str("component", "seed").Logger()}
}

// Run inserta lo que falte en una sola transacción. Correrlo dos veces no cambia nada.
func (l *Loader) Run(ctx context.Context) (Result, error) {
	var res Result
	err := l.txRunner.Run(ctx, func(repos repository.Repositories) error {
		res = Result{}
		byName := make(map[string]int64, len(categories))
		for _, c := range categories {
			cat, inserted, err := repos.Categories.CreateIfAbsent(ctx, &entity.Category{Name: c.Name, Description: c.Description})
			if err != nil {
				return fmt.Errorf("seed: categoría %s: %w", c.Name, err)
			}
			if inserted {
				res.CategoriesInserted++
			}
			byName[c.Name] = cat.ID
		}

		batchID := uuid.New().String()
		for _, p := range products {
			product := toProduct(p)
			if id, ok := byName[p.Category]; ok {
				product.CategoryID = &id
			}
			inserted, err := repos.Products.CreateIfAbsent(ctx, product)
			if err != nil {
				return fmt.Errorf("seed: producto %s: %w", p.Barcode, err)
			}
			if !inserted {
				continue
			}
			res.ProductsInserted++
			if p.Stock == 0 || !product.TrackStock {
				continue
			}
			if _, err := l.stock.ApplyInTx(ctx, repos, inventory.AdjustInput{
				ProductID: product.ID,
				Quantity:  p.Stock,
				Direction: entity.MovementEntry,
				Note:      "stock inicial",
			}, batchID); err != nil {
				return fmt.Errorf("seed: stock inicial %s: %w", p.Barcode, err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	l.log.Info().
		Int("categories", res.CategoriesInserted).
		Int("products", res.ProductsInserted).
		Msg("catálogo de ejemplo cargado")
	return res, nil
}

func toProduct(p productSeed) *entity.Product {
	barcode := p.Barcode
	kind := entity.ProductKindGood
	if p.Service {
		kind = entity.ProductKindService
	}
	return &entity.Product{
		Barcode:     &barcode,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   mustDecimal(p.Cost),
		SalePrice:   mustDecimal(p.Price),
		MinStock:    entity.DefaultMinStock,
		Kind:        kind,
		Unit:        p.Unit,
		TrackStock:  !p.Service,
	}
}
