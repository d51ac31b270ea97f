package repositories

import (
	"expense-tracker-api/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(userID uint) error
}

// SystemCategoryRepositoryInterface defines the contract for the shared
// platform category catalog
type SystemCategoryRepositoryInterface interface {
	Create(category *models.SystemCategory) error
	GetByID(id uint) (*models.SystemCategory, error)
	GetByName(name string) (*models.SystemCategory, error)
	GetAll() ([]models.SystemCategory, error)
	Delete(id uint) error
}

// UserCategoryRepositoryInterface defines the contract for per-user
// category operations
type UserCategoryRepositoryInterface interface {
	Create(category *models.UserCategory) error
	GetByID(id uint) (*models.UserCategory, error)
	GetByUserID(userID uint) ([]models.UserCategory, error)
	GetByUserIDAndName(userID uint, name string) (*models.UserCategory, error)
	DeleteOwned(categoryID, userID uint) error
}

// ExpenseRepositoryInterface defines the contract for expense repository
// operations. All reads and mutations are scoped to the owning user.
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByIDOwned(expenseID, userID uint) (*models.Expense, error)
	ListOwned(userID uint, filters models.ExpenseFilters) ([]models.Expense, int64, error)
	UpdateFieldsOwned(expenseID, userID uint, fields map[string]interface{}) error
	DeleteOwned(expenseID, userID uint) error
	CountByUserID(userID uint) (int64, error)
}
