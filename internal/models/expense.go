package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ExpenseTypeExpense = "expense"
	ExpenseTypeIncome  = "income"
)

var (
	ErrInvalidExpenseType = errors.New("type must be 'expense' or 'income'")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrBothCategoriesSet  = errors.New("expense cannot reference both a system and a user category")
)

// Expense is a single financial transaction owned by one user. Despite the
// name it records either an outflow ("expense") or an inflow ("income"),
// disambiguated by Type. At most one of SystemCategoryID/UserCategoryID may
// be set; both absent means uncategorized. The exclusivity rule is enforced
// twice: as a row-level CHECK at the storage layer and as the CategoryRef
// variant above it.
type Expense struct {
	ID               uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint            `gorm:"not null" json:"user_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_expenses_amount_positive,amount > 0" json:"amount"`
	Type             string          `gorm:"type:varchar(10);not null;check:chk_expenses_type_valid,type IN ('expense','income')" json:"type"`
	SystemCategoryID *uint           `gorm:"check:chk_expenses_single_category,NOT (system_category_id IS NOT NULL AND user_category_id IS NOT NULL)" json:"system_category_id"`
	UserCategoryID   *uint           `json:"user_category_id"`
	Description      *string         `gorm:"type:text" json:"description"`
	Date             time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`

	User           User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SystemCategory *SystemCategory `gorm:"foreignKey:SystemCategoryID;constraint:OnDelete:SET NULL" json:"-"`
	UserCategory   *UserCategory   `gorm:"foreignKey:UserCategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	return e.Validate()
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return e.Validate()
}

func (e *Expense) Validate() error {
	if e.UserID == 0 {
		return errors.New("owning user is required")
	}

	if !IsValidExpenseType(e.Type) {
		return ErrInvalidExpenseType
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}

	if e.SystemCategoryID != nil && e.UserCategoryID != nil {
		return ErrBothCategoriesSet
	}

	if e.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	return nil
}

// Category returns the expense's category reference as a tagged variant.
func (e *Expense) Category() CategoryRef {
	switch {
	case e.SystemCategoryID != nil:
		return SystemCategoryRef(*e.SystemCategoryID)
	case e.UserCategoryID != nil:
		return UserCategoryRef(*e.UserCategoryID)
	default:
		return NoCategory()
	}
}

// SetCategory applies a category reference, clearing whichever column the
// variant does not carry.
func (e *Expense) SetCategory(ref CategoryRef) {
	e.SystemCategoryID = nil
	e.UserCategoryID = nil

	switch ref.kind {
	case categoryKindSystem:
		id := ref.id
		e.SystemCategoryID = &id
	case categoryKindUser:
		id := ref.id
		e.UserCategoryID = &id
	}
}

func (e *Expense) IsIncome() bool {
	return e.Type == ExpenseTypeIncome
}

func (e *Expense) TableName() string {
	return "expenses"
}

// IsValidExpenseType checks the closed set of expense types.
func IsValidExpenseType(expenseType string) bool {
	switch expenseType {
	case ExpenseTypeExpense, ExpenseTypeIncome:
		return true
	default:
		return false
	}
}
