package dto

import (
	"time"

	"expense-tracker-api/internal/models"

	"github.com/shopspring/decimal"
)

// Expense Request DTOs

// CreateExpenseRequest contains the fields to record a transaction. Date is
// a calendar date in YYYY-MM-DD form, distinct from the creation timestamp.
type CreateExpenseRequest struct {
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	Type             string          `json:"type" validate:"required,expense_type"`
	SystemCategoryID *uint           `json:"system_category_id"`
	UserCategoryID   *uint           `json:"user_category_id"`
	Description      *string         `json:"description"`
	Date             string          `json:"date" validate:"required,expense_date"`
}

// UpdateExpenseRequest contains a partial update; only non-nil fields are
// applied.
type UpdateExpenseRequest struct {
	Amount           *decimal.Decimal `json:"amount"`
	Type             *string          `json:"type" validate:"omitempty,expense_type"`
	SystemCategoryID *uint            `json:"system_category_id"`
	UserCategoryID   *uint            `json:"user_category_id"`
	Description      *string          `json:"description"`
	Date             *string          `json:"date" validate:"omitempty,expense_date"`
}

// IsEmpty reports whether the update carries no fields at all
func (r *UpdateExpenseRequest) IsEmpty() bool {
	return r.Amount == nil &&
		r.Type == nil &&
		r.SystemCategoryID == nil &&
		r.UserCategoryID == nil &&
		r.Description == nil &&
		r.Date == nil
}

// Expense Response DTOs

// ExpenseResponse is the API view of one expense row, with category
// display names resolved from the preloaded associations
type ExpenseResponse struct {
	ID                 uint            `json:"id"`
	UserID             uint            `json:"user_id"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	SystemCategoryID   *uint           `json:"system_category_id"`
	UserCategoryID     *uint           `json:"user_category_id"`
	SystemCategoryName *string         `json:"system_category_name"`
	UserCategoryName   *string         `json:"user_category_name"`
	Description        *string         `json:"description"`
	Date               string          `json:"date"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Pagination describes the page window of a listing
type Pagination struct {
	Page        int   `json:"page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// ExpenseListSummary aggregates the returned page: outflows, inflows and
// their net
type ExpenseListSummary struct {
	Count         int             `json:"count"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	Net           decimal.Decimal `json:"net"`
}

// ExpenseListResponse is a filtered, paginated expense listing
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination Pagination         `json:"pagination"`
	Summary    ExpenseListSummary `json:"summary"`
}

// NewExpenseResponse maps an expense model (with preloaded category
// associations) to its API view
func NewExpenseResponse(expense *models.Expense) ExpenseResponse {
	response := ExpenseResponse{
		ID:               expense.ID,
		UserID:           expense.UserID,
		Amount:           expense.Amount,
		Type:             expense.Type,
		SystemCategoryID: expense.SystemCategoryID,
		UserCategoryID:   expense.UserCategoryID,
		Description:      expense.Description,
		Date:             expense.Date.Format(time.DateOnly),
		CreatedAt:        expense.CreatedAt,
	}

	if expense.SystemCategory != nil {
		name := expense.SystemCategory.DisplayName
		response.SystemCategoryName = &name
	}
	if expense.UserCategory != nil {
		name := expense.UserCategory.DisplayName
		response.UserCategoryName = &name
	}

	return response
}
