package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	p.id, p.barcode, p.name, p.description, p.cost_price, p.sale_price,
	p.current_stock, p.min_stock, p.category_id, p.supplier_id, p.kind, p.unit,
	p.track_stock, COALESCE(c.name, '')`

const productFrom = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con stock 0.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (barcode, name, description, cost_price, sale_price, current_stock,
			min_stock, category_id, supplier_id, kind, unit, track_stock)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		p.Barcode, p.Name, p.Description, p.CostPrice, p.SalePrice,
		p.MinStock, p.CategoryID, p.SupplierID, p.Kind, p.Unit, p.TrackStock,
	).Scan(&p.ID)
	if err != nil {
		return mapProductWriteErr("insert product", p, err)
	}
	p.CurrentStock = 0
	return nil
}

// CreateIfAbsent inserta solo si el código de barras no existe (ON CONFLICT DO NOTHING).
func (r *ProductRepo) CreateIfAbsent(ctx context.Context, p *entity.Product) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (barcode, name, description, cost_price, sale_price, current_stock,
			min_stock, category_id, supplier_id, kind, unit, track_stock)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (barcode) DO NOTHING
		RETURNING id`,
		p.Barcode, p.Name, p.Description, p.CostPrice, p.SalePrice,
		p.MinStock, p.CategoryID, p.SupplierID, p.Kind, p.Unit, p.TrackStock,
	).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapProductWriteErr("insert product", p, err)
	}
	p.CurrentStock = 0
	return true, nil
}

// Update actualiza los datos de catálogo. No toca current_stock (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET barcode = $2, name = $3, description = $4, cost_price = $5,
			sale_price = $6, min_stock = $7, category_id = $8, supplier_id = $9,
			kind = $10, unit = $11, track_stock = $12
		WHERE id = $1`,
		p.ID, p.Barcode, p.Name, p.Description, p.CostPrice, p.SalePrice,
		p.MinStock, p.CategoryID, p.SupplierID, p.Kind, p.Unit, p.TrackStock,
	)
	if err != nil {
		return 0, mapProductWriteErr("update product", p, err)
	}
	return cmd.RowsAffected(), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: producto %d referenciado", domain.ErrConflict, id)
		}
		return 0, domain.Storage("delete product", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *ProductRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)
		    OR EXISTS (SELECT 1 FROM stock_movements WHERE product_id = $1)`, id,
	).Scan(&referenced)
	if err != nil {
		return false, domain.Storage("product references", err)
	}
	return referenced, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+productFrom+` WHERE p.barcode = $1`, barcode)
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+productFrom+` ORDER BY p.name, p.id`)
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+productFrom+` WHERE p.category_id = $1 ORDER BY p.name, p.id`, categoryID)
}

// Search busca sin distinguir mayúsculas en nombre, código de barras y descripción.
func (r *ProductRepo) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+productFrom+`
		WHERE p.name ILIKE $1 OR p.barcode ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.name, p.id`, likePattern(term))
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+productFrom+`
		WHERE p.track_stock AND p.current_stock <= p.min_stock
		ORDER BY p.current_stock, p.name, p.id`)
}

// UpdateStock escribe el contador (uso exclusivo del motor de inventario).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, newStock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET current_stock = $2 WHERE id = $1`, id, newStock)
	if err != nil {
		return domain.Storage("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ProductRepo) UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET cost_price = $2 WHERE id = $1`, id, cost)
	if err != nil {
		return domain.Storage("update product cost", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Storage("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list products", err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Description, &p.CostPrice, &p.SalePrice,
		&p.CurrentStock, &p.MinStock, &p.CategoryID, &p.SupplierID, &p.Kind, &p.Unit,
		&p.TrackStock, &p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func mapProductWriteErr(op string, p *entity.Product, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: código de barras %q", domain.ErrDuplicate, p.BarcodeValue())
	}
	if isForeignKeyViolation(err) {
		return domain.Invalid("categoría o proveedor inexistente")
	}
	return domain.Storage(op, err)
}
