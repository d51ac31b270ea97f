package database

import (
	"fmt"
	"log"
	"time"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.SystemCategory{},
		&models.UserCategory{},
		&models.Expense{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

// CreateIndexes creates the two access-path indexes: per-user category
// lookup, and per-user expense listing ordered by date then id descending.
func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS index_user_categories_user_id ON user_categories(user_id)",
		"CREATE INDEX IF NOT EXISTS index_expenses_user_date_id ON expenses(user_id, date DESC, id DESC)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// SeedSystemCategories inserts the fixed platform category catalog.
// Idempotent: categories already present by name are left untouched, so
// re-running against an initialized store is a no-op.
func (db *DB) SeedSystemCategories() error {
	for _, entry := range models.SystemCategoryCatalog {
		var existing models.SystemCategory
		err := db.DB.Where("name = ?", entry.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check system category %q: %w", entry.Name, err)
		}

		category := &models.SystemCategory{
			Name:        entry.Name,
			DisplayName: entry.DisplayName,
		}
		if err := db.DB.Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed system category %q: %w", entry.Name, err)
		}
	}

	return nil
}

// Reset drops and recreates the full schema including seed data. This is
// the destructive initialization mode; Setup is the non-destructive one.
func (db *DB) Reset() error {
	if err := db.DB.Migrator().DropTable(
		&models.Expense{},
		&models.UserCategory{},
		&models.SystemCategory{},
		&models.User{},
	); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	return db.Setup()
}

// Setup migrates the schema, creates indexes and seeds the category
// catalog. Safe to run repeatedly.
func (db *DB) Setup() error {
	if err := db.AutoMigrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.CreateIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	if err := db.SeedSystemCategories(); err != nil {
		return fmt.Errorf("failed to seed system categories: %w", err)
	}

	return nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Get the underlying sql.DB for the migration runner
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Run SQL-based migrations using golang-migrate if enabled
	if err := RunMigrationsIfEnabled(sqlDB, &cfg.Database); err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")

		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	if cfg.Database.SeedCatalog {
		if err := db.SeedSystemCategories(); err != nil {
			return nil, fmt.Errorf("failed to seed system categories: %w", err)
		}
	}

	log.Println("Database initialized successfully")

	return db, nil
}
