package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto o servicio.
// InitialStock entra al libro como movimiento de entrada ("stock inicial").
type CreateProductRequest struct {
	Barcode      *string          `json:"barcode" validate:"omitempty,min=1,max=64"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description" validate:"max=1000"`
	CostPrice    decimal.Decimal  `json:"cost_price"`
	SalePrice    *decimal.Decimal `json:"sale_price" validate:"required"`
	InitialStock int              `json:"initial_stock" validate:"min=0"`
	MinStock     *int             `json:"min_stock" validate:"omitempty,min=0"`
	CategoryID   *int64           `json:"category_id" validate:"omitempty,gt=0"`
	SupplierID   *int64           `json:"supplier_id" validate:"omitempty,gt=0"`
	Kind         string           `json:"kind" validate:"omitempty,oneof=good service"`
	Unit         string           `json:"unit" validate:"max=16"`
	TrackStock   *bool            `json:"track_stock"`
}

// UpdateProductRequest reemplaza los datos de catálogo. No incluye stock (se maneja vía movimientos).
type UpdateProductRequest struct {
	Barcode     *string          `json:"barcode" validate:"omitempty,min=1,max=64"`
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"max=1000"`
	CostPrice   decimal.Decimal  `json:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price" validate:"required"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	SupplierID  *int64           `json:"supplier_id" validate:"omitempty,gt=0"`
	Kind        string           `json:"kind" validate:"omitempty,oneof=good service"`
	Unit        string           `json:"unit" validate:"max=16"`
	TrackStock  *bool            `json:"track_stock"`
}

// ProductResponse salida de un producto (incluye el nombre de la categoría).
type ProductResponse struct {
	ID           int64           `json:"id"`
	Barcode      *string         `json:"barcode"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	SupplierID   *int64          `json:"supplier_id"`
	Kind         string          `json:"kind"`
	Unit         string          `json:"unit"`
	TrackStock   bool            `json:"track_stock"`
	LowStock     bool            `json:"low_stock"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
