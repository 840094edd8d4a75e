package store

import (
	"fmt"
	"time"

	"rentdir/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported STORE_DRIVER values.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store bundles one table per entity type. It is an ordinary value: construct
// one per process (or per test) and pass it to the repositories.
type Store struct {
	Users         Table[models.User]
	Properties    Table[models.Property]
	Favorites     Table[models.Favorite]
	SavedSearches Table[models.SavedSearch]
	Alerts        Table[models.Alert]
	Activities    Table[models.Activity]
}

type options struct {
	clock Clock
}

// Option configures a Store.
type Option func(*options)

// WithClock overrides the creation-time source.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewMemoryStore returns a volatile store with empty tables.
func NewMemoryStore(opts ...Option) *Store {
	o := buildOptions(opts)
	return &Store{
		Users:         NewMemoryTable[models.User](o.clock),
		Properties:    NewMemoryTable[models.Property](o.clock),
		Favorites:     NewMemoryTable[models.Favorite](o.clock),
		SavedSearches: NewMemoryTable[models.SavedSearch](o.clock),
		Alerts:        NewMemoryTable[models.Alert](o.clock),
		Activities:    NewMemoryTable[models.Activity](o.clock),
	}
}

// NewGORMStore migrates the schema on db and returns a store over it.
func NewGORMStore(db *gorm.DB, opts ...Option) (*Store, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Favorite{},
		&models.SavedSearch{},
		&models.Alert{},
		&models.Activity{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	o := buildOptions(opts)
	return &Store{
		Users:         NewGORMTable[models.User](db, o.clock),
		Properties:    NewGORMTable[models.Property](db, o.clock),
		Favorites:     NewGORMTable[models.Favorite](db, o.clock),
		SavedSearches: NewGORMTable[models.SavedSearch](db, o.clock),
		Alerts:        NewGORMTable[models.Alert](db, o.clock),
		Activities:    NewGORMTable[models.Activity](db, o.clock),
	}, nil
}

// Open builds a store for the named driver. dsn is ignored by the memory driver.
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMemory, "":
		return NewMemoryStore(opts...), nil
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return NewGORMStore(db, opts...)
}
