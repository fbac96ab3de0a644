package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfsync/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

type options struct {
	logLevel    logger.LogLevel
	foreignKeys bool
}

// Option customises how NewDatabase opens the connection.
type Option func(*options)

// WithLogLevel sets the gorm logger level (default logger.Info).
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) { o.logLevel = level }
}

// WithoutForeignKeys opens the connection with SQLite foreign-key
// enforcement off, as older databases and external tools may write it.
func WithoutForeignKeys() Option {
	return func(o *options) { o.foreignKeys = false }
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logLevel: logger.Info, foreignKeys: true}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(buildDSN(dbPath, o.foreignKeys)), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities; the book_authors join table is created
	// from the many2many tags on Book and Author.
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func buildDSN(dbPath string, foreignKeys bool) string {
	fk := "off"
	if foreignKeys {
		fk = "on"
	}
	params := "_foreign_keys=" + fk + "&_journal=WAL&_busy_timeout=5000"

	separator := "?"
	if strings.Contains(dbPath, "?") {
		separator = "&"
	}
	return dbPath + separator + params
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Stats holds row counts for the catalog tables.
type Stats struct {
	Books   int64 `json:"books"`
	Authors int64 `json:"authors"`
	Links   int64 `json:"links"`
}

func (d *Database) GetStats() (Stats, error) {
	var stats Stats
	if err := d.DB.Model(&entities.Book{}).Count(&stats.Books).Error; err != nil {
		return Stats{}, err
	}
	if err := d.DB.Model(&entities.Author{}).Count(&stats.Authors).Error; err != nil {
		return Stats{}, err
	}
	if err := d.DB.Table(entities.BookAuthorsTable).Count(&stats.Links).Error; err != nil {
		return Stats{}, err
	}
	return stats, nil
}
