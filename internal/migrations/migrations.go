// Package migrations применяет встроенные SQL-миграции схемы истории запусков.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"fwPull/internal/database"
	"fwPull/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

const migrationsTable = "fwpull_schema_migrations"

//go:embed sql/*.sql
var sqlFS embed.FS

// Source возвращает драйвер источника поверх встроенных файлов.
func Source() (source.Driver, error) {
	return iofs.New(sqlFS, "sql")
}

// Run доводит схему до последней версии. Соединение db не закрывается.
func Run(db *database.DB, log *logger.Zap) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("получение соединения: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("драйвер миграций: %w", err)
	}

	src, err := Source()
	if err != nil {
		return fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("версия схемы: %w", err)
	}
	log.Info("Миграции применены", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
