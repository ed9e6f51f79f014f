// Package testutil holds fixtures shared by the package tests. It is only
// imported from _test.go files.
package testutil

import (
	"fmt"
	"testing"

	"blog-cms/config"
	"blog-cms/helper"
	"blog-cms/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig(nil, "error"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	// a single connection keeps the shared in-memory database alive and
	// serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SeedUser inserts a user whose password is hashed with the minimum bcrypt
// cost.
func SeedUser(t testing.TB, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := helper.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Username: username, Password: hash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
