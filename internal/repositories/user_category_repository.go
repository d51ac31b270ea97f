package repositories

import (
	"errors"
	"fmt"

	"expense-tracker-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserCategoryNotFound = errors.New("user category not found")
)

// UserCategoryRepository handles database operations for per-user
// categories
type UserCategoryRepository struct {
	db *gorm.DB
}

// NewUserCategoryRepository creates a new user category repository
func NewUserCategoryRepository(db *gorm.DB) UserCategoryRepositoryInterface {
	return &UserCategoryRepository{
		db: db,
	}
}

// Create inserts a user-defined category. A duplicate (user_id, name) pair
// surfaces as a uniqueness ConstraintViolation.
func (r *UserCategoryRepository) Create(category *models.UserCategory) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		if translated := translateConstraintError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create user category: %w", err)
	}

	return nil
}

// GetByID retrieves a user category by ID
func (r *UserCategoryRepository) GetByID(id uint) (*models.UserCategory, error) {
	var category models.UserCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get user category by ID: %w", err)
	}

	return &category, nil
}

// GetByUserID lists a user's categories ordered by display name
func (r *UserCategoryRepository) GetByUserID(userID uint) ([]models.UserCategory, error) {
	var categories []models.UserCategory
	if err := r.db.Where("user_id = ?", userID).
		Order("display_name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list user categories: %w", err)
	}

	return categories, nil
}

// GetByUserIDAndName retrieves one of a user's categories by internal name
func (r *UserCategoryRepository) GetByUserIDAndName(userID uint, name string) (*models.UserCategory, error) {
	var category models.UserCategory
	if err := r.db.Where("user_id = ? AND name = ?", userID, name).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get user category by name: %w", err)
	}

	return &category, nil
}

// DeleteOwned removes a category only if it belongs to the given user.
// Expenses referencing it survive with the reference nulled.
func (r *UserCategoryRepository) DeleteOwned(categoryID, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&models.UserCategory{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserCategoryNotFound
	}

	return nil
}
