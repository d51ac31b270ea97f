package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/services"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create records a new expense or income transaction
// @Summary Create an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} SuccessResponse{data=dto.ExpenseResponse} "Expense created"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 / EXPENSE_002..005"
// @Failure 422 {object} errors.ErrorResponse "Unknown category - CATEGORY_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.CreateExpense(userID, &req)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    expense,
		Message: "Expense created successfully",
	})
}

// Get returns one expense by ID
// @Summary Get an expense
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} SuccessResponse{data=dto.ExpenseResponse} "Expense"
// @Failure 404 {object} errors.ErrorResponse "Expense not found - EXPENSE_001"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Expense ID must be a positive integer"))
	}

	expense, err := h.expenseService.GetExpense(userID, expenseID)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: expense,
	})
}

// List returns a filtered, paginated listing of the user's expenses,
// newest first
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param type query string false "Filter by type (expense or income)"
// @Param system_category_id query int false "Filter by system category"
// @Param user_category_id query int false "Filter by user category"
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ExpenseListResponse "Filtered expense page"
// @Failure 400 {object} errors.ErrorResponse "Invalid filter - VALIDATION_003 or VALIDATION_005"
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, filterErr := h.parseFilters(c)
	if filterErr != nil {
		return SendError(c, filterErr.code, errors.WithDetails(filterErr.details))
	}

	response, err := h.expenseService.ListExpenses(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Update applies a partial update to an expense
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} SuccessResponse{data=dto.ExpenseResponse} "Updated expense"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 / EXPENSE_002..005"
// @Failure 404 {object} errors.ErrorResponse "Expense not found - EXPENSE_001"
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Expense ID must be a positive integer"))
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, &req)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    expense,
		Message: "Expense updated successfully",
	})
}

// Delete removes an expense
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} SuccessResponse "Expense deleted"
// @Failure 404 {object} errors.ErrorResponse "Expense not found - EXPENSE_001"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Expense ID must be a positive integer"))
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Expense deleted successfully",
	})
}

// sendExpenseError maps service errors to their API error codes
func (h *ExpenseHandler) sendExpenseError(c echo.Context, err error) error {
	switch err {
	case services.ErrExpenseNotFound:
		return SendError(c, errors.ExpenseNotFound)
	case services.ErrNonPositiveAmount:
		return SendError(c, errors.ExpenseInvalidAmount)
	case services.ErrInvalidExpenseType:
		return SendError(c, errors.ExpenseInvalidType)
	case services.ErrAmbiguousCategory:
		return SendError(c, errors.ExpenseAmbiguousCategory)
	case services.ErrEmptyExpenseUpdate:
		return SendError(c, errors.ExpenseNothingToUpdate)
	case services.ErrInvalidExpenseDate:
		return SendError(c, errors.ValidationInvalidDate)
	case services.ErrCategoryDoesNotExist:
		return SendError(c, errors.CategoryInvalidRef)
	default:
		return SendSystemError(c, err)
	}
}

// filterError carries the error code for a rejected query parameter
type filterError struct {
	code    errors.ErrorCode
	details string
}

func (e *filterError) Error() string {
	return e.details
}

// parseFilters builds expense listing filters from query parameters
func (h *ExpenseHandler) parseFilters(c echo.Context) (models.ExpenseFilters, *filterError) {
	var filters models.ExpenseFilters

	if raw := c.QueryParam("start_date"); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filters, &filterError{errors.ValidationInvalidDate, "start_date must be in YYYY-MM-DD format"}
		}
		filters.StartDate = &date
	}

	if raw := c.QueryParam("end_date"); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filters, &filterError{errors.ValidationInvalidDate, "end_date must be in YYYY-MM-DD format"}
		}
		filters.EndDate = &date
	}

	if raw := c.QueryParam("type"); raw != "" {
		if !models.IsValidExpenseType(raw) {
			return filters, &filterError{errors.ExpenseInvalidType, "type must be 'expense' or 'income'"}
		}
		filters.Type = raw
	}

	if raw := c.QueryParam("system_category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return filters, &filterError{errors.ValidationInvalidFormat, "system_category_id must be a positive integer"}
		}
		value := uint(id)
		filters.SystemCategoryID = &value
	}

	if raw := c.QueryParam("user_category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return filters, &filterError{errors.ValidationInvalidFormat, "user_category_id must be a positive integer"}
		}
		value := uint(id)
		filters.UserCategoryID = &value
	}

	filters.Page = getIntParam(c, "page", 1)
	filters.PerPage = getIntParam(c, "per_page", models.DefaultPageSize)

	return filters, nil
}
