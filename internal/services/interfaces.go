package services

import (
	"time"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
)

// PasswordServiceInterface provides password hashing and verification
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// TokenServiceInterface provides JWT access token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// AuthServiceInterface provides registration, login and account lifecycle
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetProfile(userID uint) (*dto.UserResponse, error)
	DeleteAccount(userID uint) error
}

// CategoryServiceInterface provides category listing and per-user category
// management
type CategoryServiceInterface interface {
	ListCategories(userID uint) (*dto.CategoryListResponse, error)
	CreateCategory(userID uint, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(userID, categoryID uint) error
}

// ExpenseServiceInterface provides expense recording and retrieval
type ExpenseServiceInterface interface {
	CreateExpense(userID uint, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	GetExpense(userID, expenseID uint) (*dto.ExpenseResponse, error)
	ListExpenses(userID uint, filters models.ExpenseFilters) (*dto.ExpenseListResponse, error)
	UpdateExpense(userID, expenseID uint, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	DeleteExpense(userID, expenseID uint) error
}

// MetricsRecorderInterface abstracts the metrics backend so services can
// record events without binding to a registry
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
