package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repositories"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService coordinates registration, login and account lifecycle.
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates an auth service with its dependencies
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a new user account and returns a token response.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("auth_register", time.Since(start))
	}()

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		s.metrics.IncrementCounter("auth_register_conflict", nil)
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index is the authority; the pre-check above only
		// narrows the race window.
		if repositories.IsUniquenessViolation(err) {
			s.metrics.IncrementCounter("auth_register_conflict", nil)
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncrementCounter("auth_register_success", nil)
	s.logger.Info("user registered", "user_id", user.ID)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("auth_login", time.Since(start))
	}()

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.IncrementCounter("auth_login_failure", nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.metrics.IncrementCounter("auth_login_failure", nil)
		s.logger.Warn("failed login attempt", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncrementCounter("auth_login_success", nil)
	s.logger.Info("user logged in", "user_id", user.ID)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

// GetProfile returns the profile of the given user.
func (s *AuthService) GetProfile(userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteAccount removes the user and, through cascading deletes, all of
// their categories and expenses.
func (s *AuthService) DeleteAccount(userID uint) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.metrics.IncrementCounter("auth_account_deleted", nil)
	s.logger.Info("user account deleted", "user_id", userID)
	return nil
}
