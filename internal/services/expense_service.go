package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidExpenseDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrCategoryDoesNotExist = errors.New("referenced category does not exist")
	ErrAmbiguousCategory    = errors.New("expense cannot reference both a system and a user category")
	ErrEmptyExpenseUpdate   = errors.New("update must change at least one field")
	ErrNonPositiveAmount    = models.ErrNonPositiveAmount
	ErrInvalidExpenseType   = models.ErrInvalidExpenseType
)

// ExpenseService records and retrieves per-user transactions.
type ExpenseService struct {
	expenseRepo        repositories.ExpenseRepositoryInterface
	systemCategoryRepo repositories.SystemCategoryRepositoryInterface
	userCategoryRepo   repositories.UserCategoryRepositoryInterface
	metrics            MetricsRecorderInterface
	logger             *slog.Logger
}

// NewExpenseService creates an expense service with its dependencies
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	systemCategoryRepo repositories.SystemCategoryRepositoryInterface,
	userCategoryRepo repositories.UserCategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo:        expenseRepo,
		systemCategoryRepo: systemCategoryRepo,
		userCategoryRepo:   userCategoryRepo,
		metrics:            metrics,
		logger:             logger,
	}
}

// CreateExpense records a new transaction for the user.
func (s *ExpenseService) CreateExpense(userID uint, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("expense_create", time.Since(start))
	}()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}
	if !models.IsValidExpenseType(req.Type) {
		return nil, ErrInvalidExpenseType
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, ErrInvalidExpenseDate
	}

	ref, err := s.resolveCategoryRef(userID, req.SystemCategoryID, req.UserCategoryID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        date,
	}
	expense.SetCategory(ref)

	if err := s.expenseRepo.Create(expense); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return nil, ErrCategoryDoesNotExist
		}
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.metrics.IncrementCounter("expense_created", map[string]string{"type": expense.Type})
	s.logger.Info("expense created", "user_id", userID, "expense_id", expense.ID, "type", expense.Type)

	// Re-read with associations so the response carries category names
	created, err := s.expenseRepo.GetByIDOwned(expense.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created expense: %w", err)
	}

	resp := dto.NewExpenseResponse(created)
	return &resp, nil
}

// GetExpense returns one of the user's expenses by ID.
func (s *ExpenseService) GetExpense(userID, expenseID uint) (*dto.ExpenseResponse, error) {
	expense, err := s.expenseRepo.GetByIDOwned(expenseID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}

	resp := dto.NewExpenseResponse(expense)
	return &resp, nil
}

// ListExpenses returns a filtered page of the user's expenses, newest
// first, with pagination metadata and totals over the returned page.
func (s *ExpenseService) ListExpenses(userID uint, filters models.ExpenseFilters) (*dto.ExpenseListResponse, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("expense_list", time.Since(start))
	}()

	filters.Normalize()

	expenses, total, err := s.expenseRepo.ListOwned(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	totalExpenses := decimal.Zero
	totalIncome := decimal.Zero
	for i := range expenses {
		responses = append(responses, dto.NewExpenseResponse(&expenses[i]))
		switch expenses[i].Type {
		case models.ExpenseTypeExpense:
			totalExpenses = totalExpenses.Add(expenses[i].Amount)
		case models.ExpenseTypeIncome:
			totalIncome = totalIncome.Add(expenses[i].Amount)
		}
	}

	totalPages := int(total) / filters.PerPage
	if int(total)%filters.PerPage != 0 {
		totalPages++
	}

	return &dto.ExpenseListResponse{
		Expenses: responses,
		Pagination: dto.Pagination{
			Page:        filters.Page,
			PerPage:     filters.PerPage,
			TotalItems:  total,
			TotalPages:  totalPages,
			HasPrevious: filters.Page > 1,
			HasNext:     filters.Page < totalPages,
		},
		Summary: dto.ExpenseListSummary{
			Count:         len(responses),
			TotalExpenses: totalExpenses,
			TotalIncome:   totalIncome,
			Net:           totalIncome.Sub(totalExpenses),
		},
	}, nil
}

// UpdateExpense applies a partial update to one of the user's expenses.
func (s *ExpenseService) UpdateExpense(userID, expenseID uint, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyExpenseUpdate
	}

	fields := make(map[string]interface{})

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrNonPositiveAmount
		}
		fields["amount"] = *req.Amount
	}

	if req.Type != nil {
		if !models.IsValidExpenseType(*req.Type) {
			return nil, ErrInvalidExpenseType
		}
		fields["type"] = *req.Type
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return nil, ErrInvalidExpenseDate
		}
		fields["date"] = date
	}

	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if req.SystemCategoryID != nil || req.UserCategoryID != nil {
		ref, err := s.resolveCategoryRef(userID, req.SystemCategoryID, req.UserCategoryID)
		if err != nil {
			return nil, err
		}

		// Moving the expense to one category side clears the other
		if id, ok := ref.SystemID(); ok {
			fields["system_category_id"] = id
			fields["user_category_id"] = nil
		} else if id, ok := ref.UserID(); ok {
			fields["system_category_id"] = nil
			fields["user_category_id"] = id
		}
	}

	if err := s.expenseRepo.UpdateFieldsOwned(expenseID, userID, fields); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		if repositories.IsForeignKeyViolation(err) {
			return nil, ErrCategoryDoesNotExist
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.metrics.IncrementCounter("expense_updated", nil)
	s.logger.Info("expense updated", "user_id", userID, "expense_id", expenseID)

	return s.GetExpense(userID, expenseID)
}

// DeleteExpense removes one of the user's expenses.
func (s *ExpenseService) DeleteExpense(userID, expenseID uint) error {
	if err := s.expenseRepo.DeleteOwned(expenseID, userID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.metrics.IncrementCounter("expense_deleted", nil)
	s.logger.Info("expense deleted", "user_id", userID, "expense_id", expenseID)
	return nil
}

// resolveCategoryRef validates at most one category reference and checks
// that the referenced category exists. User categories must belong to the
// requesting user; a foreign user's category reads as nonexistent.
func (s *ExpenseService) resolveCategoryRef(userID uint, systemCategoryID, userCategoryID *uint) (models.CategoryRef, error) {
	if systemCategoryID != nil && userCategoryID != nil {
		return models.NoCategory(), ErrAmbiguousCategory
	}

	if systemCategoryID != nil {
		if _, err := s.systemCategoryRepo.GetByID(*systemCategoryID); err != nil {
			if errors.Is(err, repositories.ErrSystemCategoryNotFound) {
				return models.NoCategory(), ErrCategoryDoesNotExist
			}
			return models.NoCategory(), fmt.Errorf("failed to check system category: %w", err)
		}
		return models.SystemCategoryRef(*systemCategoryID), nil
	}

	if userCategoryID != nil {
		category, err := s.userCategoryRepo.GetByID(*userCategoryID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserCategoryNotFound) {
				return models.NoCategory(), ErrCategoryDoesNotExist
			}
			return models.NoCategory(), fmt.Errorf("failed to check user category: %w", err)
		}
		if category.UserID != userID {
			return models.NoCategory(), ErrCategoryDoesNotExist
		}
		return models.UserCategoryRef(*userCategoryID), nil
	}

	return models.NoCategory(), nil
}
