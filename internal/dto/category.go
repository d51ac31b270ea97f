package dto

import (
	"time"

	"expense-tracker-api/internal/models"
)

// Category source values
const (
	CategorySourceSystem = "system"
	CategorySourceUser   = "user"
)

// CreateCategoryRequest contains the display name for a new user category.
// The internal name is derived by uppercasing it.
type CreateCategoryRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// CategoryResponse is one category in a merged listing, tagged with
// whether it comes from the platform catalog or the user's own set
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListSummary carries aggregate counts for a category listing
type CategoryListSummary struct {
	Count       int `json:"count"`
	SystemCount int `json:"system_count"`
	UserCount   int `json:"user_count"`
}

// CategoryListResponse is the merged system + user category listing,
// ordered by display name
type CategoryListResponse struct {
	Categories []CategoryResponse  `json:"categories"`
	Summary    CategoryListSummary `json:"summary"`
}

// NewSystemCategoryResponse maps a system category to the listing view
func NewSystemCategoryResponse(category *models.SystemCategory) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		DisplayName: category.DisplayName,
		Source:      CategorySourceSystem,
		CreatedAt:   category.CreatedAt,
	}
}

// NewUserCategoryResponse maps a user category to the listing view
func NewUserCategoryResponse(category *models.UserCategory) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		DisplayName: category.DisplayName,
		Source:      CategorySourceUser,
		CreatedAt:   category.CreatedAt,
	}
}
