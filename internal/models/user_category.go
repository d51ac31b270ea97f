package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserCategory is a category defined by and private to one user. The
// (user_id, name) pair is unique: two users may both own a "TRAVEL"
// category, but one user cannot own two. The owning user's deletion
// cascades here; deleting a category that expenses still reference only
// clears the reference on those expenses.
//
// The source schema additionally carried a bare UNIQUE on name, which
// would make category names globally unique across all users. That
// contradicts per-user private categories and is treated as a schema bug;
// only the composite constraint is enforced.
type UserCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uniq_user_categories_user_name" json:"user_id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uniq_user_categories_user_name" json:"name"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *UserCategory) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	return c.Validate()
}

func (c *UserCategory) Validate() error {
	if c.UserID == 0 {
		return errors.New("owning user is required")
	}

	if c.Name == "" {
		return errors.New("category name is required")
	}

	if c.DisplayName == "" {
		return errors.New("category display name is required")
	}

	return nil
}

func (c *UserCategory) TableName() string {
	return "user_categories"
}
