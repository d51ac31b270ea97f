package repositories

import (
	"errors"
	"fmt"

	"expense-tracker-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseRepository handles database operations for expenses. Every query
// is scoped by owning user; there is no cross-user access path.
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &ExpenseRepository{
		db: db,
	}
}

// Create inserts an expense. Constraint failures (non-positive amount,
// bad type, both categories set, dangling references) surface as
// ConstraintViolations.
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Create(expense).Error; err != nil {
		if translated := translateConstraintError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByIDOwned retrieves an expense with its category associations, only
// if it belongs to the given user.
func (r *ExpenseRepository) GetByIDOwned(expenseID, userID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Preload("SystemCategory").
		Preload("UserCategory").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

// ListOwned returns a page of a user's expenses, newest transaction date
// first with id as tiebreaker, plus the total row count before paging.
// The ordering matches index_expenses_user_date_id.
func (r *ExpenseRepository) ListOwned(userID uint, filters models.ExpenseFilters) ([]models.Expense, int64, error) {
	filters.Normalize()

	query := r.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.SystemCategoryID != nil {
		query = query.Where("system_category_id = ?", *filters.SystemCategoryID)
	}
	if filters.UserCategoryID != nil {
		query = query.Where("user_category_id = ?", *filters.UserCategoryID)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	var expenses []models.Expense
	if err := query.Preload("SystemCategory").
		Preload("UserCategory").
		Order("date DESC, id DESC").
		Offset(filters.Offset()).
		Limit(filters.PerPage).
		Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, total, nil
}

// UpdateFieldsOwned updates specific columns of an expense only if it
// belongs to the given user. Constraint checks run at the storage layer,
// so an update into an invalid state is rejected the same way a create is.
func (r *ExpenseRepository) UpdateFieldsOwned(expenseID, userID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	result := r.db.Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", expenseID, userID).
		Updates(fields)

	if result.Error != nil {
		if translated := translateConstraintError(result.Error); translated != result.Error {
			return translated
		}
		return fmt.Errorf("failed to update expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// DeleteOwned removes an expense only if it belongs to the given user
func (r *ExpenseRepository) DeleteOwned(expenseID, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", expenseID, userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// CountByUserID counts all expenses belonging to a user
func (r *ExpenseRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	return count, nil
}
