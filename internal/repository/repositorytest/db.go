// Package repositorytest opens migrated in-memory databases for tests.
package repositorytest

import (
	"context"
	"testing"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a fresh sqlite database with the schema applied. The pool is
// pinned to one connection so the in-memory database lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db))
	return db
}

// SeedCompany inserts a company and returns it.
func SeedCompany(t testing.TB, db *gorm.DB) *model.Company {
	t.Helper()
	company := &model.Company{Name: "Acme", Email: "hr@acme.test"}
	require.NoError(t, db.Create(company).Error)
	return company
}
