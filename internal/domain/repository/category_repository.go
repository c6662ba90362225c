package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// CreateIfAbsent inserta solo si no existe una categoría con el mismo nombre.
	// Devuelve la categoría persistida (nueva o existente) y si fue insertada.
	CreateIfAbsent(ctx context.Context, category *entity.Category) (*entity.Category, bool, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) (int64, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
