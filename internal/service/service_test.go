package service

import (
	"testing"

	"github.com/talktobrent/product-api/internal/config"
	"github.com/talktobrent/product-api/internal/infrastructure"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory store with the full schema and the seed
// fixture (customers 1-3, products tire/bike/oil, five historical orders).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infrastructure.Connect(&config.Config{DBDriver: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, infrastructure.Migrate(db))
	require.NoError(t, infrastructure.NewSeedDataManager(db).SeedAll())

	return db
}
