package customer

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/models"
)

func TestResolveGetOrCreate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Customer{}))

	ctx := context.Background()

	first, err := Resolve(ctx, db, 42)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := Resolve(ctx, db, 42)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "resolution is get-or-create, not create")

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
