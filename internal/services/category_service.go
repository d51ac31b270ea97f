package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
)

var (
	ErrCategoryNameEmpty     = errors.New("category name cannot be empty")
	ErrCategoryNameReserved  = errors.New("category name conflicts with a system category")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
	ErrCategoryNotFound      = errors.New("category not found")
)

// CategoryService manages the merged view of system and user categories.
type CategoryService struct {
	systemCategoryRepo repositories.SystemCategoryRepositoryInterface
	userCategoryRepo   repositories.UserCategoryRepositoryInterface
	metrics            MetricsRecorderInterface
	logger             *slog.Logger
}

// NewCategoryService creates a category service with its dependencies
func NewCategoryService(
	systemCategoryRepo repositories.SystemCategoryRepositoryInterface,
	userCategoryRepo repositories.UserCategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		systemCategoryRepo: systemCategoryRepo,
		userCategoryRepo:   userCategoryRepo,
		metrics:            metrics,
		logger:             logger,
	}
}

// ListCategories returns all system categories plus the user's own
// categories, merged and sorted by display name.
func (s *CategoryService) ListCategories(userID uint) (*dto.CategoryListResponse, error) {
	systemCategories, err := s.systemCategoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load system categories: %w", err)
	}

	userCategories, err := s.userCategoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user categories: %w", err)
	}

	categories := make([]dto.CategoryResponse, 0, len(systemCategories)+len(userCategories))
	for i := range systemCategories {
		categories = append(categories, dto.NewSystemCategoryResponse(&systemCategories[i]))
	}
	for i := range userCategories {
		categories = append(categories, dto.NewUserCategoryResponse(&userCategories[i]))
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].DisplayName < categories[j].DisplayName
	})

	return &dto.CategoryListResponse{
		Categories: categories,
		Summary: dto.CategoryListSummary{
			Count:       len(categories),
			SystemCount: len(systemCategories),
			UserCount:   len(userCategories),
		},
	}, nil
}

// CreateCategory adds a custom category for the user. The canonical name
// is the uppercased display name; it must not collide with a system
// category or an existing category of the same user.
func (s *CategoryService) CreateCategory(userID uint, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, ErrCategoryNameEmpty
	}
	name := strings.ToUpper(displayName)

	if _, err := s.systemCategoryRepo.GetByName(name); err == nil {
		s.metrics.IncrementCounter("category_create_conflict", map[string]string{"reason": "reserved"})
		return nil, ErrCategoryNameReserved
	} else if !errors.Is(err, repositories.ErrSystemCategoryNotFound) {
		return nil, fmt.Errorf("failed to check system categories: %w", err)
	}

	category := &models.UserCategory{
		UserID:      userID,
		Name:        name,
		DisplayName: displayName,
	}

	if err := s.userCategoryRepo.Create(category); err != nil {
		if repositories.IsUniquenessViolation(err) {
			s.metrics.IncrementCounter("category_create_conflict", map[string]string{"reason": "duplicate"})
			return nil, ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncrementCounter("category_created", nil)
	s.logger.Info("user category created", "user_id", userID, "category_id", category.ID)

	resp := dto.NewUserCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory removes one of the user's own categories. Expenses that
// referenced it keep existing with their category cleared.
func (s *CategoryService) DeleteCategory(userID, categoryID uint) error {
	if err := s.userCategoryRepo.DeleteOwned(categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrUserCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.metrics.IncrementCounter("category_deleted", nil)
	s.logger.Info("user category deleted", "user_id", userID, "category_id", categoryID)
	return nil
}
