package infrastructure

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/talktobrent/product-api/internal/config"
	"github.com/talktobrent/product-api/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the relational store described by cfg. DB_DRIVER=postgres
// yields a pooled server connection; anything else yields the in-memory
// SQLite store the service defaults to.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Silent, // Set to logger.Info for more verbose logging
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	}

	if cfg.DBDriver == "postgres" {
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPass,
			cfg.DBName,
			cfg.DBSSLMode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		return db, nil
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// A second pooled connection would open a second private :memory:
	// database, so the pool is capped at one.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates the tables in dependency order and the two read-only views
// used by the history and report queries.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Customer{}); err != nil {
		return fmt.Errorf("failed to migrate Customer table: %w", err)
	}

	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return fmt.Errorf("failed to migrate Product table: %w", err)
	}

	if err := db.AutoMigrate(&model.OrderBasket{}); err != nil {
		return fmt.Errorf("failed to migrate OrderBasket table: %w", err)
	}

	if err := db.AutoMigrate(&model.OrderVolume{}); err != nil {
		return fmt.Errorf("failed to migrate OrderVolume table: %w", err)
	}

	if err := createViews(db); err != nil {
		return fmt.Errorf("failed to create views: %w", err)
	}

	return nil
}

// createViews (re)creates the joined projections. DROP + CREATE is used
// because CREATE OR REPLACE and IF NOT EXISTS are not portable across the
// two supported dialects.
func createViews(db *gorm.DB) error {
	// Line items joined with product name, keyed by order id.
	if err := db.Exec(`DROP VIEW IF EXISTS order_volumes_view`).Error; err != nil {
		return err
	}
	if err := db.Exec(`
		CREATE VIEW order_volumes_view AS
		SELECT
			order_volumes.order_id AS order_id,
			order_volumes.product_id AS product_id,
			order_volumes.volume AS volume,
			products.name AS name
		FROM order_volumes
		INNER JOIN products ON products.id = order_volumes.product_id
	`).Error; err != nil {
		return err
	}

	// Line items joined with product name and basket date, for time-bucket
	// aggregation.
	if err := db.Exec(`DROP VIEW IF EXISTS order_volumes_dates_view`).Error; err != nil {
		return err
	}
	if err := db.Exec(`
		CREATE VIEW order_volumes_dates_view AS
		SELECT
			order_volumes.order_id AS order_id,
			order_volumes.product_id AS product_id,
			order_volumes.volume AS volume,
			products.name AS name,
			order_baskets.datetime AS datetime
		FROM order_volumes
		INNER JOIN products ON products.id = order_volumes.product_id
		INNER JOIN order_baskets ON order_baskets.id = order_volumes.order_id
	`).Error; err != nil {
		return err
	}

	return nil
}
