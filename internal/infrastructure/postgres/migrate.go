package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id      BIGSERIAL PRIMARY KEY,
		name    TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id            BIGSERIAL PRIMARY KEY,
		barcode       TEXT UNIQUE,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		cost_price    NUMERIC(14,2) NOT NULL DEFAULT 0,
		sale_price    NUMERIC(14,2) NOT NULL,
		current_stock INTEGER NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
		min_stock     INTEGER NOT NULL DEFAULT 10,
		category_id   BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		supplier_id   BIGINT REFERENCES suppliers(id) ON DELETE SET NULL,
		kind          TEXT NOT NULL DEFAULT 'good',
		unit          TEXT NOT NULL DEFAULT 'un',
		track_stock   BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id),
		kind       TEXT NOT NULL CHECK (kind IN ('entry', 'exit')),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		notes      TEXT NOT NULL DEFAULT '',
		batch_id   TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_batch ON stock_movements (batch_id)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             BIGSERIAL PRIMARY KEY,
		total_value    NUMERIC(14,2) NOT NULL,
		payment_method TEXT NOT NULL,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at)`,
	`ALTER TABLE sales ADD COLUMN IF NOT EXISTS batch_id TEXT NOT NULL DEFAULT ''`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id         BIGSERIAL PRIMARY KEY,
		sale_id    BIGINT NOT NULL REFERENCES sales(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(14,2) NOT NULL,
		subtotal   NUMERIC(14,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items (product_id)`,
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return domain.Storage("migrate", err)
		}
	}
	return nil
}
