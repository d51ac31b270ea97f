package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User is an identity record. Deleting a user cascades to all of the
// user's categories and expenses via the foreign key actions declared
// on UserCategory and Expense.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`

	// The cascade must be declared on the has-many side; gorm builds the
	// users foreign key from here and ignores actions tagged on the
	// belongs-to side.
	UserCategories []UserCategory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Expenses       []Expense      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Set timestamp if not already set (for tests)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Skip validation for map-based updates: the receiver struct is empty
	// and only specific columns are being touched
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(u.Email) {
		return fmt.Errorf("invalid email format: %s", u.Email)
	}

	if u.FirstName == "" {
		return errors.New("first name is required")
	}

	if u.LastName == "" {
		return errors.New("last name is required")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u *User) TableName() string {
	return "users"
}
