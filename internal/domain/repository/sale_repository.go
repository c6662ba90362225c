package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID devuelve (nil, nil) si la venta no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// ItemsBySale incluye nombre y código de barras del producto.
	ItemsBySale(ctx context.Context, saleID int64) ([]*entity.SaleItem, error)
	DeleteItems(ctx context.Context, saleID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// List devuelve ventas (más recientes primero) con su cantidad de ítems.
	// from/to nil significa sin límite.
	List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error)
}
