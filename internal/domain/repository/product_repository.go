package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	// Create persiste el producto con stock 0; el stock inicial entra por el motor de inventario.
	Create(ctx context.Context, product *entity.Product) error
	// CreateIfAbsent inserta solo si no existe otro producto con el mismo código de barras.
	CreateIfAbsent(ctx context.Context, product *entity.Product) (bool, error)
	// Update modifica los datos de catálogo. Nunca toca current_stock.
	Update(ctx context.Context, product *entity.Product) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// IsReferenced indica si el producto tiene ventas o movimientos asociados.
	IsReferenced(ctx context.Context, id int64) (bool, error)

	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila cuando el motor lo soporta.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	Search(ctx context.Context, term string) ([]*entity.Product, error)
	// ListLowStock productos con control de stock y current_stock <= min_stock, menor stock primero.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)

	// UpdateStock escribe el contador de stock. Uso exclusivo del motor de inventario.
	UpdateStock(ctx context.Context, id int64, newStock int) error
	// UpdateCost escribe el costo promedio tras una entrada con costo.
	UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error
}
