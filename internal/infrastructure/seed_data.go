package infrastructure

import (
	"fmt"
	"time"

	"github.com/talktobrent/product-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDataManager handles sample data initialization
type SeedDataManager struct {
	db *gorm.DB
}

// NewSeedDataManager creates a new seed data manager
func NewSeedDataManager(db *gorm.DB) *SeedDataManager {
	return &SeedDataManager{db: db}
}

// SeedAll populates the store with the sample customers, the product catalog,
// and the historical orders. Seeding is skipped when customers already exist.
func (s *SeedDataManager) SeedAll() error {
	var count int64
	if err := s.db.Model(&model.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := s.seedCustomers(); err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}

	if err := s.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := s.seedOrders(); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	if err := s.resetSequences(); err != nil {
		return fmt.Errorf("failed to reset sequences: %w", err)
	}

	return nil
}

func (s *SeedDataManager) seedCustomers() error {
	customers := []model.Customer{
		{ID: 1, Name: "alice"},
		{ID: 2, Name: "bob"},
		{ID: 3, Name: "charlie"},
	}
	return s.db.Create(&customers).Error
}

func (s *SeedDataManager) seedProducts() error {
	products := []model.Product{
		{ID: 1, Name: "tire", Inventory: 10},
		{ID: 2, Name: "bike", Inventory: 5},
		{ID: 3, Name: "oil", Inventory: 20},
	}
	return s.db.Create(&products).Error
}

func (s *SeedDataManager) seedOrders() error {
	baskets := []model.OrderBasket{
		{ID: 1, CustomerID: 1, Datetime: epoch(2020, time.January, 1)},
		{ID: 2, CustomerID: 2, Datetime: epoch(2020, time.January, 3)},
		{ID: 3, CustomerID: 1, Datetime: epoch(2020, time.July, 15)},
		{ID: 4, CustomerID: 1, Datetime: epoch(2020, time.November, 2)},
		{ID: 5, CustomerID: 2, Datetime: epoch(2020, time.November, 3)},
	}
	if err := s.db.Omit(clause.Associations).Create(&baskets).Error; err != nil {
		return err
	}

	volumes := []model.OrderVolume{
		{OrderID: 1, ProductID: 1, Volume: 2},
		{OrderID: 1, ProductID: 2, Volume: 1},
		{OrderID: 2, ProductID: 3, Volume: 1},
		{OrderID: 3, ProductID: 3, Volume: 1},
		{OrderID: 4, ProductID: 1, Volume: 1},
		{OrderID: 5, ProductID: 1, Volume: 1},
	}
	return s.db.Omit(clause.Associations).Create(&volumes).Error
}

// resetSequences realigns the serial sequences with the explicitly assigned
// seed ids so the next insert does not collide. Postgres only; SQLite derives
// the next rowid from MAX(id) on its own.
func (s *SeedDataManager) resetSequences() error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"customers", "order_baskets"} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))",
			table, table,
		)
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func epoch(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}
