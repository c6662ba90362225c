package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas e ítems sobre SQLite.
type SaleRepo struct {
	db *gorm.DB
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(db *gorm.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	m := saleModel{
		TotalValue:    s.TotalValue,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt.UTC(),
		BatchID:       s.BatchID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Storage("insert sale", err)
	}
	s.ID = m.ID
	return nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	m := saleItemModel{
		SaleID:    it.SaleID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Subtotal:  it.Subtotal,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Storage("insert sale item", err)
	}
	it.ID = m.ID
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var m saleModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Storage("get sale", err)
	}
	return saleRow{Sale: m}.toEntity(), nil
}

func (r *SaleRepo) ItemsBySale(ctx context.Context, saleID int64) ([]*entity.SaleItem, error) {
	var rows []saleItemRow
	err := r.db.WithContext(ctx).
		Table("sale_items AS si").
		Select("si.*, p.name AS product_name, COALESCE(p.barcode, '') AS barcode").
		Joins("JOIN products p ON p.id = si.product_id").
		Where("si.sale_id = ?", saleID).
		Order("si.id").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.Storage("list sale items", err)
	}
	out := make([]*entity.SaleItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *SaleRepo) DeleteItems(ctx context.Context, saleID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Delete(&saleItemModel{})
	if res.Error != nil {
		return 0, domain.Storage("delete sale items", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *SaleRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&saleModel{}, id)
	if res.Error != nil {
		return 0, domain.Storage("delete sale", res.Error)
	}
	return res.RowsAffected, nil
}

// List ventas en [from, to) con su cantidad de ítems, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Sale, error) {
	q := r.db.WithContext(ctx).
		Table("sales AS s").
		Select("s.*, COUNT(si.id) AS item_count").
		Joins("LEFT JOIN sale_items si ON si.sale_id = s.id")
	if from != nil {
		q = q.Where("s.created_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("s.created_at < ?", to.UTC())
	}
	var rows []saleRow
	if err := q.Group("s.id").Order("s.created_at DESC, s.id DESC").Scan(&rows).Error; err != nil {
		return nil, domain.Storage("list sales", err)
	}
	out := make([]*entity.Sale, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
