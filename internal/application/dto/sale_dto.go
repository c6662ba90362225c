package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea del carrito.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gt=0"`
}

// CreateSaleRequest entrada para registrar una venta.
// El precio unitario no viene del cliente: se toma del catálogo al momento de vender.
type CreateSaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash credit_card debit_card pix"`
	Notes         string            `json:"notes" validate:"max=500"`
	Items         []SaleItemRequest `json:"items" validate:"dive"`
}

// SaleItemResponse línea de venta con datos de producto para mostrar.
type SaleItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera de venta; Items solo se llena en el detalle.
type SaleResponse struct {
	ID            int64              `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	TotalValue    decimal.Decimal    `json:"total_value"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
	ItemCount     int                `json:"item_count"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// CreateSaleResponse id de la venta creada y su total.
type CreateSaleResponse struct {
	ID         int64           `json:"id"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// CancelSaleResponse resultado de anular una venta.
type CancelSaleResponse struct {
	ItemsReversed int64 `json:"items_reversed"`
	SaleDeleted   int64 `json:"sale_deleted"`
}

// SaleListResponse listado de ventas con totales del conjunto.
type SaleListResponse struct {
	Items      []SaleResponse  `json:"items"`
	TotalSales int             `json:"total_sales"`
	Revenue    decimal.Decimal `json:"revenue"`
}
