// Package bootstrap abre el almacenamiento configurado y conecta los casos de uso.
// Lo comparten el servidor HTTP (cmd/api) y la CLI de operación (cmd/posctl).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/catalog"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/application/reports"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/application/seed"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/Inventario-pos/pkg/config"
)

// Storage repositorios y unidad de trabajo del motor elegido.
type Storage struct {
	Driver  string
	Repos   repository.Repositories
	Reports repository.ReportRepository
	Tx      ports.TxRunner
	close   func()
}

// Close libera las conexiones.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage abre SQLite o PostgreSQL según cfg.Driver y aplica las migraciones.
func OpenStorage(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := sqlite.Open(cfg.SQLitePath, log.With().Str("component", "gorm").Logger())
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(db); err != nil {
			_ = sqlite.Close(db)
			return nil, err
		}
		return &Storage{
			Driver:  config.DriverSQLite,
			Repos:   sqlite.NewRepositories(db),
			Reports: sqlite.NewReportRepository(db),
			Tx:      sqlite.NewTxRunner(db),
			close:   func() { _ = sqlite.Close(db) },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Storage{
			Driver:  config.DriverPostgres,
			Repos:   postgres.NewRepositories(pool),
			Reports: postgres.NewReportRepository(pool),
			Tx:      postgres.NewTxRunner(pool),
			close:   pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}

// Services casos de uso listos para usar.
type Services struct {
	Auth       *auth.AuthUseCase
	Engine     *inventory.Engine
	Products   *catalog.ProductUseCase
	Categories *catalog.CategoryUseCase
	Suppliers  *catalog.SupplierUseCase
	Sales      *sales.SaleUseCase
	Reports    *reports.ReportUseCase
	Seed       *seed.Loader
}

// NewServices conecta los casos de uso sobre el almacenamiento abierto.
func NewServices(cfg *config.Config, st *Storage, log zerolog.Logger) *Services {
	r := st.Repos
	engine := inventory.NewEngine(st.Tx, r.Products, r.Movements, log)
	receipt := pdf.NewReceiptGenerator(cfg.App.Name, pdf.NewMoneyFormatter(cfg.App.Locale, cfg.App.Currency))
	return &Services{
		Auth: auth.NewAuthUseCase(
			auth.Operator{Username: cfg.Auth.OperatorUser, PasswordHash: cfg.Auth.OperatorPasswordHash},
			auth.JWTConfig{Secret: cfg.Auth.JWTSecret, ExpMinutes: cfg.Auth.ExpirationMinutes, Issuer: cfg.Auth.Issuer},
		),
		Engine:     engine,
		Products:   catalog.NewProductUseCase(st.Tx, r.Products, r.Categories, r.Suppliers, engine, log),
		Categories: catalog.NewCategoryUseCase(r.Categories),
		Suppliers:  catalog.NewSupplierUseCase(r.Suppliers),
		Sales:      sales.NewSaleUseCase(st.Tx, r.Sales, engine, receipt, log),
		Reports:    reports.NewReportUseCase(st.Reports, r.Products, r.Sales, log),
		Seed:       seed.NewLoader(st.Tx, engine, log),
	}
}
