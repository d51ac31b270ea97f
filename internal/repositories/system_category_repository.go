package repositories

import (
	"errors"
	"fmt"

	"expense-tracker-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSystemCategoryNotFound = errors.New("system category not found")
)

// SystemCategoryRepository handles database operations for the shared
// platform category catalog. Writes happen at seed time only; runtime
// traffic is read-mostly.
type SystemCategoryRepository struct {
	db *gorm.DB
}

// NewSystemCategoryRepository creates a new system category repository
func NewSystemCategoryRepository(db *gorm.DB) SystemCategoryRepositoryInterface {
	return &SystemCategoryRepository{
		db: db,
	}
}

// Create inserts a catalog entry
func (r *SystemCategoryRepository) Create(category *models.SystemCategory) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		if translated := translateConstraintError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create system category: %w", err)
	}

	return nil
}

// GetByID retrieves a system category by ID
func (r *SystemCategoryRepository) GetByID(id uint) (*models.SystemCategory, error) {
	var category models.SystemCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get system category by ID: %w", err)
	}

	return &category, nil
}

// GetByName retrieves a system category by its internal uppercase name
func (r *SystemCategoryRepository) GetByName(name string) (*models.SystemCategory, error) {
	var category models.SystemCategory
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get system category by name: %w", err)
	}

	return &category, nil
}

// GetAll lists the full catalog ordered by display name
func (r *SystemCategoryRepository) GetAll() ([]models.SystemCategory, error) {
	var categories []models.SystemCategory
	if err := r.db.Order("display_name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list system categories: %w", err)
	}

	return categories, nil
}

// Delete removes a catalog entry. Expenses referencing it survive with the
// reference nulled (ON DELETE SET NULL).
func (r *SystemCategoryRepository) Delete(id uint) error {
	result := r.db.Delete(&models.SystemCategory{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete system category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSystemCategoryNotFound
	}

	return nil
}
