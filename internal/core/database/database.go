package database

import (
	"database/sql"
	"fmt"

	"github.com/frahmantamala/employee-directory/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLDriverName maps a configured driver to the database/sql driver name
// registered by pgx stdlib and go-sqlite3.
func SQLDriverName(driver string) (string, error) {
	switch driver {
	case internal.DriverPostgres:
		return "pgx", nil
	case internal.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", driver)
	}
}

// NewGorm wraps an open connection pool in gorm. The pool stays owned by the
// caller, gorm only borrows it.
func NewGorm(driver string, conn *sql.DB, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case internal.DriverPostgres:
		dialector = postgres.New(postgres.Config{Conn: conn})
	case internal.DriverSQLite:
		dialector = sqlite.New(sqlite.Config{Conn: conn})
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open gorm: %w", err)
	}
	return db, nil
}
