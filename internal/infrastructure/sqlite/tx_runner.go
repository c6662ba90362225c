package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción GORM (rollback ante cualquier error).
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repos atados a la tx. Dentro de fn solo deben usarse esos repos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories arma todos los repositorios sobre el mismo *gorm.DB (base o tx).
func NewRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Categories: NewCategoryRepository(db),
		Suppliers:  NewSupplierRepository(db),
		Products:   NewProductRepository(db),
		Movements:  NewStockMovementRepository(db),
		Sales:      NewSaleRepository(db),
	}
}
