// Package domain contains the parker account model consumed by billing.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// User is a registered parker. Contact fields are snapshotted onto sale
// activities at creation time; later edits here do not rewrite history.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	PhoneNumber  string       `gorm:"type:text"`
	LicensePlate string       `gorm:"type:text"`
	BillingToken string       `gorm:"type:text"` // gateway customer token
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

var ErrUserNotFound = errors.New("user_not_found")

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
}
