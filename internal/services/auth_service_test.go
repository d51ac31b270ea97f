package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokenService() TokenServiceInterface {
	return NewTokenService(&config.JWTConfig{
		Secret:              "test-secret-key",
		AccessTokenDuration: time.Hour,
		Issuer:              "expense-tracker-api",
	})
}

type AuthServiceTestSuite struct {
	suite.Suite
	db       *database.DB
	userRepo repositories.UserRepositoryInterface
	service  AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.userRepo = repositories.NewUserRepository(s.db.DB)
	s.service = NewAuthService(
		s.userRepo,
		NewPasswordService(bcrypt.MinCost),
		testTokenService(),
		NewNoopMetrics(),
		testLogger(),
	)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     email,
		Password:  "valid-password",
		FirstName: "Test",
		LastName:  "User",
	}
}

func (s *AuthServiceTestSuite) TestRegister() {
	tokens, err := s.service.Register(registerRequest("new@example.com"))
	s.NoError(err)
	s.NotEmpty(tokens.AccessToken)
	s.Equal("Bearer", tokens.TokenType)
	s.Equal("new@example.com", tokens.User.Email)

	// Password is stored hashed
	user, err := s.userRepo.GetByEmail("new@example.com")
	s.NoError(err)
	s.NotEqual("valid-password", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	_, err := s.service.Register(registerRequest("dup@example.com"))
	s.NoError(err)

	_, err = s.service.Register(registerRequest("dup@example.com"))
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestLogin() {
	_, err := s.service.Register(registerRequest("login@example.com"))
	s.Require().NoError(err)

	tokens, err := s.service.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "valid-password",
	})
	s.NoError(err)
	s.NotEmpty(tokens.AccessToken)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	_, err := s.service.Register(registerRequest("victim@example.com"))
	s.Require().NoError(err)

	_, err = s.service.Login(&dto.LoginRequest{
		Email:    "victim@example.com",
		Password: "wrong-password",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	// Same error as a wrong password, so the response does not reveal
	// whether the account exists
	_, err := s.service.Login(&dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "valid-password",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestGetProfile() {
	tokens, err := s.service.Register(registerRequest("profile@example.com"))
	s.Require().NoError(err)

	profile, err := s.service.GetProfile(tokens.User.ID)
	s.NoError(err)
	s.Equal("profile@example.com", profile.Email)

	_, err = s.service.GetProfile(99999)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *AuthServiceTestSuite) TestDeleteAccount() {
	tokens, err := s.service.Register(registerRequest("gone@example.com"))
	s.Require().NoError(err)

	userID := tokens.User.ID
	database.CreateTestUserCategory(s.T(), s.db, userID, "TRAVEL", "Travel")
	database.CreateTestExpense(s.T(), s.db, userID, 10, models.ExpenseTypeExpense)

	s.NoError(s.service.DeleteAccount(userID))

	_, err = s.service.GetProfile(userID)
	s.ErrorIs(err, ErrUserNotFound)

	var categoryCount, expenseCount int64
	s.db.Model(&models.UserCategory{}).Where("user_id = ?", userID).Count(&categoryCount)
	s.db.Model(&models.Expense{}).Where("user_id = ?", userID).Count(&expenseCount)
	s.Zero(categoryCount)
	s.Zero(expenseCount)
}

func (s *AuthServiceTestSuite) TestDeleteAccount_Unknown() {
	s.ErrorIs(s.service.DeleteAccount(99999), ErrUserNotFound)
}
