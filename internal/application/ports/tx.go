// Package ports define los puertos de aplicación que no pertenecen a un solo caso de uso.
package ports

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante cualquier error (o panic).
// Todo paso de escritura de varias etapas (ajuste de stock, venta, anulación, seed) pasa por aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
