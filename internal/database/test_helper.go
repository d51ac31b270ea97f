package database

import (
	"fmt"
	"testing"
	"time"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// SQLite leaves foreign keys off unless asked; the referential actions
	// under test depend on them
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	if err := testDB.CreateIndexes(); err != nil {
		t.Fatalf("failed to create test indexes: %v", err)
	}

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		FirstName:    "Test",
		LastName:     "User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestSystemCategory(t *testing.T, db *DB, name, displayName string) *models.SystemCategory {
	t.Helper()

	category := &models.SystemCategory{
		Name:        name,
		DisplayName: displayName,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test system category: %v", err)
	}

	return category
}

func CreateTestUserCategory(t *testing.T, db *DB, userID uint, name, displayName string) *models.UserCategory {
	t.Helper()

	category := &models.UserCategory{
		UserID:      userID,
		Name:        name,
		DisplayName: displayName,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test user category: %v", err)
	}

	return category
}

func CreateTestExpense(t *testing.T, db *DB, userID uint, amount float64, expenseType string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID: userID,
		Amount: decimal.NewFromFloat(amount),
		Type:   expenseType,
		Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}

	return expense
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"expenses",
		"user_categories",
		"system_categories",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
