package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/services"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// List returns the merged catalog of system categories and the user's own
// categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CategoryListResponse "Merged category catalog"
// @Failure 401 {object} errors.ErrorResponse "Missing or invalid token - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	response, err := h.categoryService.ListCategories(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Create adds a custom category for the user
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} SuccessResponse{data=dto.CategoryResponse} "Category created"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 409 {object} errors.ErrorResponse "Duplicate name - CATEGORY_002 or CATEGORY_003"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateCategory(userID, &req)
	if err != nil {
		switch err {
		case services.ErrCategoryNameEmpty:
			return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Category name cannot be empty"))
		case services.ErrCategoryNameReserved:
			return SendError(c, errors.CategoryNameReserved)
		case services.ErrCategoryAlreadyExists:
			return SendError(c, errors.CategoryAlreadyExists)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    category,
		Message: "Category created successfully",
	})
}

// Delete removes one of the user's own categories. System categories
// cannot be deleted through the API.
// @Summary Delete a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} SuccessResponse "Category deleted"
// @Failure 400 {object} errors.ErrorResponse "Invalid ID - VALIDATION_003"
// @Failure 404 {object} errors.ErrorResponse "Category not found - CATEGORY_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Category ID must be a positive integer"))
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Category deleted successfully",
	})
}
