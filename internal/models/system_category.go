package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SystemCategory is a platform-curated category shared across all users.
// The catalog is fixed and seeded at initialization; end users never create
// or delete system categories. Expenses referencing a deleted system
// category keep the row and lose the reference (SET NULL).
type SystemCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// SeedEntry is one row of the fixed system category catalog.
type SeedEntry struct {
	Name        string
	DisplayName string
}

// SystemCategoryCatalog is the fixed set of 15 platform categories inserted
// at database initialization. Internal names are uppercase, display names
// lowercase.
var SystemCategoryCatalog = []SeedEntry{
	{Name: "SALARY", DisplayName: "salary"},
	{Name: "RENT", DisplayName: "rent"},
	{Name: "UTILITIES", DisplayName: "utilities"},
	{Name: "GROCERY", DisplayName: "grocery"},
	{Name: "EMI", DisplayName: "emi"},
	{Name: "TRANSPORT", DisplayName: "transport"},
	{Name: "FREELANCE", DisplayName: "freelance"},
	{Name: "INVESTMENT", DisplayName: "investment"},
	{Name: "INVESTMENT RETURN", DisplayName: "investment return"},
	{Name: "SHOPPING", DisplayName: "shopping"},
	{Name: "SUBSCRIPTION", DisplayName: "subscription"},
	{Name: "REMITTANCE SENT", DisplayName: "remittance sent"},
	{Name: "REMITTANCE RECEIVED", DisplayName: "remittance received"},
	{Name: "LEISURE", DisplayName: "leisure"},
	{Name: "MEDICAL", DisplayName: "medical"},
}

func (c *SystemCategory) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	return c.Validate()
}

func (c *SystemCategory) Validate() error {
	if c.Name == "" {
		return errors.New("system category name is required")
	}

	if c.Name != strings.ToUpper(c.Name) {
		return errors.New("system category name must be uppercase")
	}

	if c.DisplayName == "" {
		return errors.New("system category display name is required")
	}

	return nil
}

func (c *SystemCategory) TableName() string {
	return "system_categories"
}
