package sqlite

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

type categoryModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null;uniqueIndex"`
	Description string `gorm:"not null;default:''"`
}

func (categoryModel) TableName() string { return "categories" }

type supplierModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"not null"`
	Address string `gorm:"not null;default:''"`
	Contact string `gorm:"not null;default:''"`
}

func (supplierModel) TableName() string { return "suppliers" }

type productModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Barcode      *string         `gorm:"uniqueIndex"`
	Name         string          `gorm:"not null"`
	Description  string          `gorm:"not null;default:''"`
	CostPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SalePrice    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CurrentStock int             `gorm:"not null;default:0;check:current_stock >= 0"`
	MinStock     int             `gorm:"not null"`
	CategoryID   *int64          `gorm:"index"`
	SupplierID   *int64
	Kind         string `gorm:"not null;default:'good'"`
	Unit         string `gorm:"not null;default:'un'"`
	TrackStock   bool   `gorm:"not null"`
	// SearchText nombre, código y descripción plegados (Unicode): LIKE de SQLite solo pliega ASCII.
	SearchText string `gorm:"not null;default:''"`
}

func (productModel) TableName() string { return "products" }

// productRow producto con el nombre de su categoría (LEFT JOIN).
// Los modelos van en campos con nombre: GORM ignora los embebidos no exportados al escanear.
type productRow struct {
	Product      productModel `gorm:"embedded"`
	CategoryName string
}

type stockMovementModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProductID int64     `gorm:"not null;index:idx_stock_movements_product,priority:1"`
	Kind      string    `gorm:"not null;check:kind IN ('entry','exit')"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	Notes     string    `gorm:"not null;default:''"`
	BatchID   string    `gorm:"not null;default:'';index"`
	CreatedAt time.Time `gorm:"not null;index:idx_stock_movements_product,priority:2"`
}

func (stockMovementModel) TableName() string { return "stock_movements" }

type saleModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	TotalValue    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod string          `gorm:"not null"`
	Notes         string          `gorm:"not null;default:''"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	BatchID       string          `gorm:"not null;default:''"`
}

func (saleModel) TableName() string { return "sales" }

// saleRow venta con su cantidad de ítems.
type saleRow struct {
	Sale      saleModel `gorm:"embedded"`
	ItemCount int
}

type saleItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	SaleID    int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (saleItemModel) TableName() string { return "sale_items" }

type saleItemRow struct {
	Item        saleItemModel `gorm:"embedded"`
	ProductName string
	Barcode     string
}

func allModels() []any {
	return []any{
		&categoryModel{}, &supplierModel{}, &productModel{},
		&stockMovementModel{}, &saleModel{}, &saleItemModel{},
	}
}

// ── conversiones ─────────────────────────────────────────────────────────────

func toCategoryModel(c *entity.Category) categoryModel {
	return categoryModel{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (m categoryModel) toEntity() *entity.Category {
	return &entity.Category{ID: m.ID, Name: m.Name, Description: m.Description}
}

func (m supplierModel) toEntity() *entity.Supplier {
	return &entity.Supplier{ID: m.ID, Name: m.Name, Address: m.Address, Contact: m.Contact}
}

func toProductModel(p *entity.Product) productModel {
	return productModel{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		Kind:         p.Kind,
		Unit:         p.Unit,
		TrackStock:   p.TrackStock,
		SearchText:   searchText(p.Name, p.BarcodeValue(), p.Description),
	}
}

// fold pliega mayúsculas con las reglas Unicode (cases.Caser no se comparte entre goroutines).
func fold(s string) string {
	return cases.Fold().String(s)
}

func searchText(name, barcode, description string) string {
	return fold(strings.Join([]string{name, barcode, description}, "\n"))
}

func (r productRow) toEntity() *entity.Product {
	m := r.Product
	return &entity.Product{
		ID:           m.ID,
		Barcode:      m.Barcode,
		Name:         m.Name,
		Description:  m.Description,
		CostPrice:    m.CostPrice,
		SalePrice:    m.SalePrice,
		CurrentStock: m.CurrentStock,
		MinStock:     m.MinStock,
		CategoryID:   m.CategoryID,
		SupplierID:   m.SupplierID,
		Kind:         m.Kind,
		Unit:         m.Unit,
		TrackStock:   m.TrackStock,
		CategoryName: r.CategoryName,
	}
}

func (m stockMovementModel) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		BatchID:   m.BatchID,
		CreatedAt: m.CreatedAt,
	}
}

func (r saleRow) toEntity() *entity.Sale {
	m := r.Sale
	return &entity.Sale{
		ID:            m.ID,
		TotalValue:    m.TotalValue,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		BatchID:       m.BatchID,
		ItemCount:     r.ItemCount,
	}
}

func (r saleItemRow) toEntity() *entity.SaleItem {
	m := r.Item
	return &entity.SaleItem{
		ID:          m.ID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
		ProductName: r.ProductName,
		Barcode:     r.Barcode,
	}
}
