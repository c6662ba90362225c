// Package testutil arma el sistema completo sobre SQLite en memoria para los tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-pos/internal/application/catalog"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reports"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/application/seed"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/sqlite"
)

// Stack casos de uso conectados a una base SQLite aislada por test.
type Stack struct {
	DB         *gorm.DB
	Repos      repository.Repositories
	Tx         *sqlite.TxRunner
	Engine     *inventory.Engine
	Products   *catalog.ProductUseCase
	Categories *catalog.CategoryUseCase
	Suppliers  *catalog.SupplierUseCase
	Sales      *sales.SaleUseCase
	Reports    *reports.ReportUseCase
	Seed       *seed.Loader
}

var dbSeq atomic.Int64

// OpenDB abre una base en memoria con nombre único por test y aplica las migraciones.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
	db, err := sqlite.Open(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

// NewStack arma el stack. receipt puede ser nil.
func NewStack(t *testing.T, receipt sales.ReceiptGenerator) *Stack {
	t.Helper()
	db := OpenDB(t)
	log := zerolog.Nop()
	repos := sqlite.NewRepositories(db)
	tx := sqlite.NewTxRunner(db)
	engine := inventory.NewEngine(tx, repos.Products, repos.Movements, log)
	return &Stack{
		DB:         db,
		Repos:      repos,
		Tx:         tx,
		Engine:     engine,
		Products:   catalog.NewProductUseCase(tx, repos.Products, repos.Categories, repos.Suppliers, engine, log),
		Categories: catalog.NewCategoryUseCase(repos.Categories),
		Suppliers:  catalog.NewSupplierUseCase(repos.Suppliers),
		Sales:      sales.NewSaleUseCase(tx, repos.Sales, engine, receipt, log),
		Reports:    reports.NewReportUseCase(sqlite.NewReportRepository(db), repos.Products, repos.Sales, log),
		Seed:       seed.NewLoader(tx, engine, log),
	}
}

// CreateProduct crea un producto controlado con stock inicial y devuelve su id.
func (s *Stack) CreateProduct(t *testing.T, barcode, salePrice string, stock int) int64 {
	t.Helper()
	price := decimal.RequireFromString(salePrice)
	id, err := s.Products.Create(context.Background(), dto.CreateProductRequest{
		Barcode:      &barcode,
		Name:         "Producto " + barcode,
		SalePrice:    &price,
		InitialStock: stock,
	})
	require.NoError(t, err)
	return id
}

// CreateService crea un producto de tipo servicio (sin control de stock).
func (s *Stack) CreateService(t *testing.T, barcode, salePrice string) int64 {
	t.Helper()
	price := decimal.RequireFromString(salePrice)
	id, err := s.Products.Create(context.Background(), dto.CreateProductRequest{
		Barcode:   &barcode,
		Name:      "Servicio " + barcode,
		SalePrice: &price,
		Kind:      "service",
	})
	require.NoError(t, err)
	return id
}

// Stock lee el stock actual del producto.
func (s *Stack) Stock(t *testing.T, productID int64) int {
	t.Helper()
	p, err := s.Repos.Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}
