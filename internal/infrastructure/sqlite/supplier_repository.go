package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre SQLite.
type SupplierRepo struct {
	db *gorm.DB
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(db *gorm.DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	m := supplierModel{Name: s.Name, Address: s.Address, Contact: s.Contact}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Storage("insert supplier", err)
	}
	s.ID = m.ID
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var m supplierModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Storage("get supplier", err)
	}
	return m.toEntity(), nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	var ms []supplierModel
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, domain.Storage("list suppliers", err)
	}
	out := make([]*entity.Supplier, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toEntity())
	}
	return out, nil
}
