package repositories

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/models"
)

func TestUserCategoryRepository(t *testing.T) {
	suite.Run(t, new(UserCategoryRepositorySuite))
}

type UserCategoryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserCategoryRepositoryInterface
	user *models.User
}

func (s *UserCategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserCategoryRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
}

func (s *UserCategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_Create() {
	category := &models.UserCategory{
		UserID:      s.user.ID,
		Name:        "TRAVEL",
		DisplayName: "Travel",
	}

	err := s.repo.Create(category)
	s.NoError(err)
	s.NotZero(category.ID)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_Create_DuplicateNameSameUser() {
	database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "TRAVEL", "Travel")

	err := s.repo.Create(&models.UserCategory{
		UserID:      s.user.ID,
		Name:        "TRAVEL",
		DisplayName: "Travel again",
	})
	s.Error(err)
	s.True(IsUniquenessViolation(err))
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_Create_SameNameDifferentUsers() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "TRAVEL", "Travel")

	err := s.repo.Create(&models.UserCategory{
		UserID:      other.ID,
		Name:        "TRAVEL",
		DisplayName: "Travel",
	})
	s.NoError(err)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_Create_UnknownUser() {
	err := s.repo.Create(&models.UserCategory{
		UserID:      99999,
		Name:        "ORPHAN",
		DisplayName: "Orphan",
	})
	s.Error(err)
	s.True(IsForeignKeyViolation(err))
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_GetByUserID_OrderedByDisplayName() {
	database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "ZOO", "Zoo trips")
	database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")

	other := database.CreateTestUser(s.T(), s.db, "someone@example.com")
	database.CreateTestUserCategory(s.T(), s.db, other.ID, "HIDDEN", "Hidden")

	categories, err := s.repo.GetByUserID(s.user.ID)
	s.NoError(err)
	s.Len(categories, 2)
	s.Equal("BOOKS", categories[0].Name)
	s.Equal("ZOO", categories[1].Name)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_GetByUserIDAndName() {
	created := database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")

	category, err := s.repo.GetByUserIDAndName(s.user.ID, "BOOKS")
	s.NoError(err)
	s.Equal(created.ID, category.ID)

	_, err = s.repo.GetByUserIDAndName(s.user.ID, "MISSING")
	s.Equal(ErrUserCategoryNotFound, err)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_DeleteOwned() {
	category := database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")

	err := s.repo.DeleteOwned(category.ID, s.user.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(category.ID)
	s.Equal(ErrUserCategoryNotFound, err)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_DeleteOwned_ForeignUser() {
	other := database.CreateTestUser(s.T(), s.db, "stranger@example.com")
	category := database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")

	err := s.repo.DeleteOwned(category.ID, other.ID)
	s.Equal(ErrUserCategoryNotFound, err)

	_, err = s.repo.GetByID(category.ID)
	s.NoError(err)
}

func (s *UserCategoryRepositorySuite) TestUserCategoryRepository_DeleteOwned_ClearsExpenseReference() {
	category := database.CreateTestUserCategory(s.T(), s.db, s.user.ID, "BOOKS", "Books")

	expense := database.CreateTestExpense(s.T(), s.db, s.user.ID, 9.99, models.ExpenseTypeExpense)
	s.NoError(s.db.Model(expense).Update("user_category_id", category.ID).Error)

	s.NoError(s.repo.DeleteOwned(category.ID, s.user.ID))

	var reloaded models.Expense
	s.NoError(s.db.First(&reloaded, expense.ID).Error)
	s.Nil(reloaded.UserCategoryID)
}
