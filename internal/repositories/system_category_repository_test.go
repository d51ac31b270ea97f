package repositories

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
)

func TestSystemCategoryRepository(t *testing.T) {
	suite.Run(t, new(SystemCategoryRepositorySuite))
}

type SystemCategoryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo SystemCategoryRepositoryInterface
}

func (s *SystemCategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewSystemCategoryRepository(s.db.DB)
}

func (s *SystemCategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *SystemCategoryRepositorySuite) TestSystemCategoryRepository_Create() {
	category := &models.SystemCategory{
		Name:        "GROCERY",
		DisplayName: "Grocery",
	}

	err := s.repo.Create(category)
	s.NoError(err)
	s.NotZero(category.ID)
	s.NotZero(category.CreatedAt)
}

func (s *SystemCategoryRepositorySuite) TestSystemCategoryRepository_Create_DuplicateName() {
	s.NoError(s.repo.Create(&models.SystemCategory{Name: "RENT", DisplayName: "Rent"}))

	err := s.repo.Create(&models.SystemCategory{Name: "RENT", DisplayName: "Rent again"})
	s.Error(err)
	s.True(IsUniquenessViolation(err))
}

func (s *SystemCategoryRepositorySuite) TestSystemCategoryRepository_GetByName() {
	created := database.CreateTestSystemCategory(s.T(), s.db, "SALARY", "Salary")

	category, err := s.repo.GetByName("SALARY")
	s.NoError(err)
	s.Equal(created.ID, category.ID)

	_, err = s.repo.GetByName("UNKNOWN")
	s.Equal(ErrSystemCategoryNotFound, err)
}

func (s *SystemCategoryRepositorySuite) TestSystemCategoryRepository_GetAll_OrderedByDisplayName() {
	database.CreateTestSystemCategory(s.T(), s.db, "UTILITIES", "Utilities")
	database.CreateTestSystemCategory(s.T(), s.db, "EMI", "EMI")
	database.CreateTestSystemCategory(s.T(), s.db, "MEDICAL", "Medical")

	categories, err := s.repo.GetAll()
	s.NoError(err)
	s.Len(categories, 3)
	s.Equal("EMI", categories[0].Name)
	s.Equal("MEDICAL", categories[1].Name)
	s.Equal("UTILITIES", categories[2].Name)
}

func (s *SystemCategoryRepositorySuite) TestSystemCategoryRepository_Delete_ClearsExpenseReference() {
	user := database.CreateTestUser(s.T(), s.db, "setnull@example.com")
	category := database.CreateTestSystemCategory(s.T(), s.db, "LEISURE", "Leisure")

	expense := database.CreateTestExpense(s.T(), s.db, user.ID, 15.00, models.ExpenseTypeExpense)
	s.NoError(s.db.Model(expense).Update("system_category_id", category.ID).Error)

	s.NoError(s.repo.Delete(category.ID))

	var reloaded models.Expense
	s.NoError(s.db.First(&reloaded, expense.ID).Error)
	s.Nil(reloaded.SystemCategoryID)
}
