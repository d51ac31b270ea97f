package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
	ValidationWeakPassword  ErrorCode = "VALIDATION_006"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
	UserInvalidID     ErrorCode = "USER_003"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound      ErrorCode = "CATEGORY_001"
	CategoryAlreadyExists ErrorCode = "CATEGORY_002"
	CategoryNameReserved  ErrorCode = "CATEGORY_003"
	CategoryInvalidRef    ErrorCode = "CATEGORY_004"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound          ErrorCode = "EXPENSE_001"
	ExpenseInvalidAmount     ErrorCode = "EXPENSE_002"
	ExpenseInvalidType       ErrorCode = "EXPENSE_003"
	ExpenseAmbiguousCategory ErrorCode = "EXPENSE_004"
	ExpenseNothingToUpdate   ErrorCode = "EXPENSE_005"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid email or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Date must be in YYYY-MM-DD format",
	ValidationWeakPassword:  "Password does not meet minimum requirements",

	// User errors
	UserNotFound:      "User not found",
	UserAlreadyExists: "Email already registered",
	UserInvalidID:     "Invalid user ID format",

	// Category errors
	CategoryNotFound:      "Category not found",
	CategoryAlreadyExists: "You already have a category with this name",
	CategoryNameReserved:  "This name is reserved by a system category",
	CategoryInvalidRef:    "Referenced category does not exist",

	// Expense errors
	ExpenseNotFound:          "Expense not found",
	ExpenseInvalidAmount:     "Amount must be greater than zero",
	ExpenseInvalidType:       "Type must be 'expense' or 'income'",
	ExpenseAmbiguousCategory: "An expense can reference at most one category",
	ExpenseNothingToUpdate:   "No fields provided to update",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:     "Database connection error",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
