package entity

import "github.com/shopspring/decimal"

// Tipos de producto.
const (
	ProductKindGood    = "good"    // mercancía física, controla stock
	ProductKindService = "service" // servicio, sin stock
)

// DefaultMinStock umbral de stock bajo cuando no se indica otro.
const DefaultMinStock = 10

// DefaultUnit unidad de medida por defecto.
const DefaultUnit = "un"

// Product representa un producto o servicio del catálogo.
// CurrentStock solo lo modifica el motor de inventario, siempre junto a un StockMovement.
type Product struct {
	ID           int64
	Barcode      *string // único; nil si el producto no tiene código
	Name         string
	Description  string
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	CurrentStock int
	MinStock     int
	CategoryID   *int64
	SupplierID   *int64
	Kind         string // good, service
	Unit         string // un, kg, l, par...
	TrackStock   bool

	// CategoryName proyección de lectura (JOIN con categories); nunca se persiste.
	CategoryName string
}

// IsLowStock indica si el producto está en o por debajo de su mínimo.
func (p *Product) IsLowStock() bool {
	return p.TrackStock && p.CurrentStock <= p.MinStock
}

// BarcodeValue devuelve el código de barras o "" si no tiene.
func (p *Product) BarcodeValue() string {
	if p.Barcode == nil {
		return ""
	}
	return *p.Barcode
}
