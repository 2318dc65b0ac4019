package database

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atelier/internal/models"
)

// Sentinel errors surfaced to handlers so they can map persistence
// failures onto the right HTTP responses.
var (
	ErrNotFound           = errors.New("record not found")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// Database wraps the ORM handle and exposes the query helpers the
// handlers work with.
type Database struct {
	gorm *gorm.DB
}

// Open connects to the configured database. A postgres:// URL selects
// the Postgres driver, anything else is treated as a SQLite path
// (":memory:" included, which the tests rely on).
func Open(databaseURL string) (*Database, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return &Database{gorm: db}, nil
}

// Migrate creates or updates the schema for all models.
func (d *Database) Migrate() error {
	return d.gorm.AutoMigrate(
		&models.Portfolio{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	)
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
