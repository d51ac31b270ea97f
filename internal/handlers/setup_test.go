package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/repositories"
	"expense-tracker-api/internal/services"
)

// handlerTestEnv wires the real service stack over an in-memory database
// so handler tests exercise the same code paths as production requests.
type handlerTestEnv struct {
	db              *database.DB
	echo            *echo.Echo
	authService     services.AuthServiceInterface
	categoryService services.CategoryServiceInterface
	expenseService  services.ExpenseServiceInterface
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()

	db := database.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := services.NewNoopMetrics()

	userRepo := repositories.NewUserRepository(db.DB)
	systemCategoryRepo := repositories.NewSystemCategoryRepository(db.DB)
	userCategoryRepo := repositories.NewUserCategoryRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)

	tokenService := services.NewTokenService(&config.JWTConfig{
		Secret:              "handler-test-secret",
		AccessTokenDuration: time.Hour,
		Issuer:              "expense-tracker-api",
	})

	e := echo.New()
	e.Validator = NewValidator()

	return &handlerTestEnv{
		db:   db,
		echo: e,
		authService: services.NewAuthService(
			userRepo,
			services.NewPasswordService(bcrypt.MinCost),
			tokenService,
			metrics,
			logger,
		),
		categoryService: services.NewCategoryService(
			systemCategoryRepo,
			userCategoryRepo,
			metrics,
			logger,
		),
		expenseService: services.NewExpenseService(
			expenseRepo,
			systemCategoryRepo,
			userCategoryRepo,
			metrics,
			logger,
		),
	}
}

func (env *handlerTestEnv) cleanup(t *testing.T) {
	t.Helper()
	database.CleanupTestDB(t, env.db)
}

// registerUser creates an account through the auth service and returns
// its user ID for authenticated handler calls.
func (env *handlerTestEnv) registerUser(t *testing.T, email string) uint {
	t.Helper()

	tokens, err := env.authService.Register(&dto.RegisterRequest{
		Email:     email,
		Password:  "valid-password",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}

	return tokens.User.ID
}

// newJSONContext builds an echo context carrying a JSON body, mirroring
// what the router would hand a handler.
func (env *handlerTestEnv) newJSONContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return env.echo.NewContext(req, rec), rec
}

// asUser marks the context as authenticated, the way the auth middleware
// would after validating a token.
func asUser(c echo.Context, userID uint) {
	c.Set("user_id", userID)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
