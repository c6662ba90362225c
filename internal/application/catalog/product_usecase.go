// Package catalog contiene los casos de uso del catálogo: productos, categorías y proveedores.
package catalog

import (
	"context"
	"fmt"
	"strings"

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

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner   ports.TxRunner
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	stock      StockAdjuster
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner ports.TxRunner,
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	stock StockAdjuster,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:   txRunner,
		repo:       repo,
		categories: categories,
		suppliers:  suppliers,
		stock:      stock,
		log:        log.With().Str("component", "catalog").Logger(),
	}
}

// Create crea un producto con stock 0 y, si hay stock inicial, registra la entrada
// en el libro dentro de la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (int64, error) {
	if err := dto.Validate(in); err != nil {
		return 0, err
	}
	product, err := uc.buildProduct(ctx, productFields{
		Barcode: in.Barcode, Name: in.Name, Description: in.Description,
		CostPrice: in.CostPrice, SalePrice: *in.SalePrice, MinStock: in.MinStock,
		CategoryID: in.CategoryID, SupplierID: in.SupplierID,
		Kind: in.Kind, Unit: in.Unit, TrackStock: in.TrackStock,
	})
	if err != nil {
		return 0, err
	}
	if in.InitialStock > 0 && !product.TrackStock {
		return 0, domain.Invalid("un producto sin control de stock no admite stock inicial")
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		_, err := uc.stock.ApplyInTx(ctx, repos, inventory.AdjustInput{
			ProductID: product.ID,
			Quantity:  in.InitialStock,
			Direction: entity.MovementEntry,
			Note:      "stock inicial",
		}, uuid.New().String())
		return err
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("product_id", product.ID).Str("name", product.Name).
		Int("initial_stock", in.InitialStock).Msg("producto creado")
	return product.ID, nil
}

// Update reemplaza los datos de catálogo de un producto. Devuelve 0 si el id no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (int64, error) {
	if err := dto.Validate(in); err != nil {
		return 0, err
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	product, err := uc.buildProduct(ctx, productFields{
		Barcode: in.Barcode, Name: in.Name, Description: in.Description,
		CostPrice: in.CostPrice, SalePrice: *in.SalePrice, MinStock: in.MinStock,
		CategoryID: in.CategoryID, SupplierID: in.SupplierID,
		Kind: in.Kind, Unit: in.Unit, TrackStock: in.TrackStock,
	})
	if err != nil {
		return 0, err
	}
	// Apagar el control de stock con unidades en existencia dejaría el contador sin libro
	if existing.TrackStock && !product.TrackStock && existing.CurrentStock > 0 {
		return 0, fmt.Errorf("%w: el producto %d aún tiene %d unidades en stock",
			domain.ErrConflict, id, existing.CurrentStock)
	}
	product.ID = id
	return uc.repo.Update(ctx, product)
}

// Delete elimina un producto sin ventas ni movimientos. Devuelve 0 si el id no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) (int64, error) {
	referenced, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return 0, err
	}
	if referenced {
		return 0, fmt.Errorf("%w: el producto %d tiene ventas o movimientos registrados", domain.ErrConflict, id)
	}
	n, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Int64("product_id", id).Msg("producto eliminado")
	}
	return n, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	out := ToProductResponse(p)
	return &out, nil
}

// GetByBarcode obtiene un producto por código de barras (lector del punto de venta).
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.Invalid("código de barras requerido")
	}
	p, err := uc.repo.GetByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrNotFound, code)
	}
	out := ToProductResponse(p)
	return &out, nil
}

// ListAll lista todo el catálogo ordenado por nombre.
func (uc *ProductUseCase) ListAll(ctx context.Context) (*dto.ProductListResponse, error) {
	return toList(uc.repo.ListAll(ctx))
}

// ListByCategory lista los productos de una categoría ordenados por nombre.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID int64) (*dto.ProductListResponse, error) {
	return toList(uc.repo.ListByCategory(ctx, categoryID))
}

// Search busca por nombre, código de barras o descripción (sin distinguir mayúsculas).
// Un término vacío devuelve todo el catálogo.
func (uc *ProductUseCase) Search(ctx context.Context, term string) (*dto.ProductListResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.ListAll(ctx)
	}
	return toList(uc.repo.Search(ctx, term))
}

// ListLowStock productos en o por debajo de su mínimo, el más crítico primero.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	return toList(uc.repo.ListLowStock(ctx))
}

// productFields campos comunes de alta y edición.
type productFields struct {
	Barcode     *string
	Name        string
	Description string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	MinStock    *int
	CategoryID  *int64
	SupplierID  *int64
	Kind        string
	Unit        string
	TrackStock  *bool
}

// buildProduct aplica reglas y valores por defecto del catálogo.
func (uc *ProductUseCase) buildProduct(ctx context.Context, f productFields) (*entity.Product, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre es requerido")
	}
	if f.SalePrice.IsNegative() {
		return nil, domain.Invalid("el precio de venta no puede ser negativo")
	}
	if f.CostPrice.IsNegative() {
		return nil, domain.Invalid("el precio de costo no puede ser negativo")
	}

	kind := f.Kind
	if kind == "" {
		kind = entity.ProductKindGood
	}
	track := kind == entity.ProductKindGood
	if f.TrackStock != nil {
		track = *f.TrackStock
	}
	minStock := entity.DefaultMinStock
	if f.MinStock != nil {
		minStock = *f.MinStock
	}
	unit := strings.TrimSpace(f.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	var barcode *string
	if f.Barcode != nil {
		if b := strings.TrimSpace(*f.Barcode); b != "" {
			barcode = &b
		}
	}

	if f.CategoryID != nil {
		c, err := uc.categories.GetByID(ctx, *f.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.Invalid("la categoría %d no existe", *f.CategoryID)
		}
	}
	if f.SupplierID != nil {
		s, err := uc.suppliers.GetByID(ctx, *f.SupplierID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.Invalid("el proveedor %d no existe", *f.SupplierID)
		}
	}

	return &entity.Product{
		Barcode:     barcode,
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		CostPrice:   f.CostPrice,
		SalePrice:   f.SalePrice,
		MinStock:    minStock,
		CategoryID:  f.CategoryID,
		SupplierID:  f.SupplierID,
		Kind:        kind,
		Unit:        unit,
		TrackStock:  track,
	}, nil
}

func toList(list []*entity.Product, err error) (*dto.ProductListResponse, error) {
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, ToProductResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}

// ToProductResponse convierte la entidad en su DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		SupplierID:   p.SupplierID,
		Kind:         p.Kind,
		Unit:         p.Unit,
		TrackStock:   p.TrackStock,
		LowStock:     p.IsLowStock(),
	}
}
