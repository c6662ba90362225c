package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre SQLite.
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository construye el adaptador. Pasar la base o una tx.
func NewCategoryRepository(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	m := toCategoryModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, c.Name)
		}
		return domain.Storage("insert category", err)
	}
	c.ID = m.ID
	return nil
}

func (r *CategoryRepo) CreateIfAbsent(ctx context.Context, c *entity.Category) (*entity.Category, bool, error) {
	m := toCategoryModel(c)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return nil, false, domain.Storage("insert category", res.Error)
	}
	if res.RowsAffected == 1 {
		c.ID = m.ID
		return c, true, nil
	}
	existing, err := r.GetByName(ctx, c.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, "name = ?", name)
}

func (r *CategoryRepo) getOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	var m categoryModel
	err := r.db.WithContext(ctx).Where(where, arg).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Storage("get category", err)
	}
	return m.toEntity(), nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (int64, error) {
	res := r.db.WithContext(ctx).Model(&categoryModel{}).Where("id = ?", c.ID).
		Updates(map[string]any{"name": c.Name, "description": c.Description})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return 0, fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, c.Name)
		}
		return 0, domain.Storage("update category", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var ms []categoryModel
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, domain.Storage("list categories", err)
	}
	out := make([]*entity.Category, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.toEntity())
	}
	return out, nil
}
