package repositories

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
)

func TestExpenseRepository(t *testing.T) {
	suite.Run(t, new(ExpenseRepositorySuite))
}

type ExpenseRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo ExpenseRepositoryInterface
	user *models.User
}

func (s *ExpenseRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewExpenseRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "spender@example.com")
}

func (s *ExpenseRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ExpenseRepositorySuite) createExpenseOn(date time.Time, amount float64, expenseType string) *models.Expense {
	expense := &models.Expense{
		UserID: s.user.ID,
		Amount: decimal.NewFromFloat(amount),
		Type:   expenseType,
		Date:   date,
	}
	s.Require().NoError(s.db.Create(expense).Error)
	return expense
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create() {
	expense := &models.Expense{
		UserID: s.user.ID,
		Amount: decimal.NewFromFloat(25.50),
		Type:   models.ExpenseTypeExpense,
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	err := s.repo.Create(expense)
	s.NoError(err)
	s.NotZero(expense.ID)
	s.NotZero(expense.CreatedAt)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create_RejectsNonPositiveAmount() {
	expense := &models.Expense{
		UserID: s.user.ID,
		Amount: decimal.Zero,
		Type:   models.ExpenseTypeExpense,
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	err := s.repo.Create(expense)
	s.ErrorIs(err, models.ErrNonPositiveAmount)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create_RejectsUnknownType() {
	expense := &models.Expense{
		UserID: s.user.ID,
		Amount: decimal.NewFromFloat(10),
		Type:   "transfer",
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	err := s.repo.Create(expense)
	s.ErrorIs(err, models.ErrInvalidExpenseType)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create_RejectsBothCategories() {
	systemCategory := database.CreateTestSystemCategory(s.T(), s.db, "GROCERY", "Grocery")
	userCategory := database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")

	expense := &models.Expense{
		UserID:           s.user.ID,
		Amount:           decimal.NewFromFloat(10),
		Type:             models.ExpenseTypeExpense,
		Date:             time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		SystemCategoryID: &systemCategory.ID,
		UserCategoryID:   &userCategory.ID,
	}

	err := s.repo.Create(expense)
	s.ErrorIs(err, models.ErrBothCategoriesSet)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create_UnknownCategory() {
	missing := uint(99999)
	expense := &models.Expense{
		UserID:           s.user.ID,
		Amount:           decimal.NewFromFloat(10),
		Type:             models.ExpenseTypeExpense,
		Date:             time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		SystemCategoryID: &missing,
	}

	err := s.repo.Create(expense)
	s.Error(err)
	s.True(IsForeignKeyViolation(err))
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_GetByIDOwned() {
	expense := database.CreateTestExpense(s.T(), s.db, s.user.ID, 42.00, models.ExpenseTypeExpense)

	found, err := s.repo.GetByIDOwned(expense.ID, s.user.ID)
	s.NoError(err)
	s.Equal(expense.ID, found.ID)

	other := database.CreateTestUser(s.T(), s.db, "nosy@example.com")
	_, err = s.repo.GetByIDOwned(expense.ID, other.ID)
	s.Equal(ErrExpenseNotFound, err)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_GetByIDOwned_PreloadsCategories() {
	category := database.CreateTestSystemCategory(s.T(), s.db, "TRANSPORT", "Transport")
	expense := database.CreateTestExpense(s.T(), s.db, s.user.ID, 3.20, models.ExpenseTypeExpense)
	s.NoError(s.db.Model(expense).Update("system_category_id", category.ID).Error)

	found, err := s.repo.GetByIDOwned(expense.ID, s.user.ID)
	s.NoError(err)
	s.Require().NotNil(found.SystemCategory)
	s.Equal("Transport", found.SystemCategory.DisplayName)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ListOwned_NewestFirst() {
	older := s.createExpenseOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10, models.ExpenseTypeExpense)
	newer := s.createExpenseOn(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 20, models.ExpenseTypeExpense)
	sameDayLater := s.createExpenseOn(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 30, models.ExpenseTypeIncome)

	expenses, total, err := s.repo.ListOwned(s.user.ID, models.ExpenseFilters{})
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(expenses, 3)

	// Same date orders by descending ID
	s.Equal(sameDayLater.ID, expenses[0].ID)
	s.Equal(newer.ID, expenses[1].ID)
	s.Equal(older.ID, expenses[2].ID)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ListOwned_DateRange() {
	s.createExpenseOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10, models.ExpenseTypeExpense)
	inRange := s.createExpenseOn(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 20, models.ExpenseTypeExpense)
	s.createExpenseOn(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 30, models.ExpenseTypeExpense)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	expenses, total, err := s.repo.ListOwned(s.user.ID, models.ExpenseFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(expenses, 1)
	s.Equal(inRange.ID, expenses[0].ID)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ListOwned_TypeFilter() {
	s.createExpenseOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10, models.ExpenseTypeExpense)
	income := s.createExpenseOn(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 500, models.ExpenseTypeIncome)

	expenses, total, err := s.repo.ListOwned(s.user.ID, models.ExpenseFilters{Type: models.ExpenseTypeIncome})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(expenses, 1)
	s.Equal(income.ID, expenses[0].ID)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ListOwned_CategoryFilter() {
	category := database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")
	tagged := s.createExpenseOn(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10, models.ExpenseTypeExpense)
	s.NoError(s.db.Model(tagged).Update("user_category_id", category.ID).Error)
	s.createExpenseOn(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 20, models.ExpenseTypeExpense)

	expenses, total, err := s.repo.ListOwned(s.user.ID, models.ExpenseFilters{UserCategoryID: &category.ID})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(expenses, 1)
	s.Equal(tagged.ID, expenses[0].ID)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ListOwned_Pagination() {
	for day := 1; day <= 5; day++ {
		s.createExpenseOn(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC), float64(day), models.ExpenseTypeExpense)
	}

	expenses, total, err := s.repo.ListOwned(s.user.ID, models.ExpenseFilters{Page: 2, PerPage: 2})
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(expenses, 2)
	s.Equal("2024-01-03", expenses[0].Date.Format(time.DateOnly))
	s.Equal("2024-01-02", expenses[1].Date.Format(time.DateOnly))
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ListOwned_ScopedToUser() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	database.CreateTestExpense(s.T(), s.db, other.ID, 99, models.ExpenseTypeExpense)

	expenses, total, err := s.repo.ListOwned(s.user.ID, models.ExpenseFilters{})
	s.NoError(err)
	s.Zero(total)
	s.Empty(expenses)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_UpdateFieldsOwned() {
	expense := database.CreateTestExpense(s.T(), s.db, s.user.ID, 10, models.ExpenseTypeExpense)

	err := s.repo.UpdateFieldsOwned(expense.ID, s.user.ID, map[string]interface{}{
		"amount": decimal.NewFromFloat(99.95),
		"type":   models.ExpenseTypeIncome,
	})
	s.NoError(err)

	updated, err := s.repo.GetByIDOwned(expense.ID, s.user.ID)
	s.NoError(err)
	s.True(updated.Amount.Equal(decimal.NewFromFloat(99.95)))
	s.Equal(models.ExpenseTypeIncome, updated.Type)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_UpdateFieldsOwned_ForeignUser() {
	other := database.CreateTestUser(s.T(), s.db, "intruder@example.com")
	expense := database.CreateTestExpense(s.T(), s.db, s.user.ID, 10, models.ExpenseTypeExpense)

	err := s.repo.UpdateFieldsOwned(expense.ID, other.ID, map[string]interface{}{
		"amount": decimal.NewFromFloat(1),
	})
	s.Equal(ErrExpenseNotFound, err)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_DeleteOwned() {
	expense := database.CreateTestExpense(s.T(), s.db, s.user.ID, 10, models.ExpenseTypeExpense)

	s.NoError(s.repo.DeleteOwned(expense.ID, s.user.ID))

	_, err := s.repo.GetByIDOwned(expense.ID, s.user.ID)
	s.Equal(ErrExpenseNotFound, err)

	err = s.repo.DeleteOwned(expense.ID, s.user.ID)
	s.Equal(ErrExpenseNotFound, err)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_CountByUserID() {
	database.CreateTestExpense(s.T(), s.db, s.user.ID, 10, models.ExpenseTypeExpense)
	database.CreateTestExpense(s.T(), s.db, s.user.ID, 20, models.ExpenseTypeIncome)

	count, err := s.repo.CountByUserID(s.user.ID)
	s.NoError(err)
	s.Equal(int64(2), count)
}
