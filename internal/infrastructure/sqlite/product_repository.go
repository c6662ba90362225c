package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el adaptador. Pasar la base o una tx.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto con stock 0.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	m := toProductModel(p)
	m.CurrentStock = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código de barras %q", domain.ErrDuplicate, p.BarcodeValue())
		}
		return domain.Storage("insert product", err)
	}
	p.ID = m.ID
	p.CurrentStock = 0
	return nil
}

// CreateIfAbsent inserta solo si el código de barras no existe (ON CONFLICT DO NOTHING).
func (r *ProductRepo) CreateIfAbsent(ctx context.Context, p *entity.Product) (bool, error) {
	m := toProductModel(p)
	m.CurrentStock = 0
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return false, domain.Storage("insert product", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	p.ID = m.ID
	p.CurrentStock = 0
	return true, nil
}

// Update actualiza los datos de catálogo. No toca current_stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (int64, error) {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"barcode":     p.Barcode,
		"name":        p.Name,
		"description": p.Description,
		"cost_price":  p.CostPrice,
		"sale_price":  p.SalePrice,
		"min_stock":   p.MinStock,
		"category_id": p.CategoryID,
		"supplier_id": p.SupplierID,
		"kind":        p.Kind,
		"unit":        p.Unit,
		"track_stock": p.TrackStock,
		"search_text": searchText(p.Name, p.BarcodeValue(), p.Description),
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return 0, fmt.Errorf("%w: código de barras %q", domain.ErrDuplicate, p.BarcodeValue())
		}
		return 0, domain.Storage("update product", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return 0, domain.Storage("delete product", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ProductRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = ?)
		    OR EXISTS (SELECT 1 FROM stock_movements WHERE product_id = ?)`, id, id,
	).Row().Scan(&referenced)
	if err != nil {
		return false, domain.Storage("product references", err)
	}
	return referenced, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "p.id = ?", id)
}

// GetForUpdate en SQLite equivale a GetByID: la tx ya tiene la base para sí (una sola conexión).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "p.id = ?", id)
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, "p.barcode = ?", barcode)
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(r.query(ctx).Order("p.name, p.id"))
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return r.list(r.query(ctx).Where("p.category_id = ?", categoryID).Order("p.name, p.id"))
}

// Search busca en nombre, código de barras y descripción sin distinguir mayúsculas (también acentuadas).
func (r *ProductRepo) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	return r.list(r.query(ctx).
		Where(`p.search_text LIKE ? ESCAPE '\'`, likePattern(fold(term))).
		Order("p.name, p.id"))
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.list(r.query(ctx).
		Where("p.track_stock = ? AND p.current_stock <= p.min_stock", true).
		Order("p.current_stock, p.name, p.id"))
}

// UpdateStock escribe el contador (uso exclusivo del motor de inventario).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, newStock int) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Update("current_stock", newStock)
	if res.Error != nil {
		return domain.Storage("update product stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ProductRepo) UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Update("cost_price", cost)
	if res.Error != nil {
		return domain.Storage("update product cost", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ProductRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.*, COALESCE(c.name, '') AS category_name").
		Joins("LEFT JOIN categories c ON c.id = p.category_id")
}

func (r *ProductRepo) getOne(ctx context.Context, where string, arg any) (*entity.Product, error) {
	var rows []productRow
	if err := r.query(ctx).Where(where, arg).Limit(1).Scan(&rows).Error; err != nil {
		return nil, domain.Storage("get product", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toEntity(), nil
}

func (r *ProductRepo) list(q *gorm.DB) ([]*entity.Product, error) {
	var rows []productRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, domain.Storage("list products", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
