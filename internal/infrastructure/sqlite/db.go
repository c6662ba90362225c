// Package sqlite implementa los repositorios sobre SQLite con GORM.
// Es el almacenamiento por defecto de un punto de venta de una sola caja.
package sqlite

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// Open abre la base SQLite en path (archivo o DSN "file:...?mode=memory&cache=shared").
// Usa una única conexión: SQLite serializa las escrituras y así una transacción
// nunca compite con otra conexión del mismo proceso.
func Open(path string, log zerolog.Logger) (*gorm.DB, error) {
	gl := gormlogger.New(&log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gl,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate crea o actualiza las tablas (AutoMigrate). Es idempotente.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return domain.Storage("migrate", err)
	}
	if err := backfillSearchText(db); err != nil {
		return domain.Storage("migrate search_text", err)
	}
	return nil
}

// backfillSearchText completa search_text en productos creados antes de existir la columna.
func backfillSearchText(db *gorm.DB) error {
	var pending []productModel
	if err := db.Where("search_text = ''").Find(&pending).Error; err != nil {
		return err
	}
	for _, m := range pending {
		barcode := ""
		if m.Barcode != nil {
			barcode = *m.Barcode
		}
		err := db.Model(&productModel{}).Where("id = ?", m.ID).
			Update("search_text", searchText(m.Name, barcode, m.Description)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
