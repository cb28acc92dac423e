package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *SaleActivity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SaleActivity, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]SaleActivity, error)
	// FindBetween returns activities whose entry or subscription date falls in
	// the half-open window [start, end), ordered by creation.
	FindBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]SaleActivity, error)
	ExistsForSubscriptionBetween(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, start, end time.Time) (bool, error)
	UpdateParkingStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status ParkingStatus, updatedAt time.Time) error
	UpdateGateResponse(ctx context.Context, db *gorm.DB, id snowflake.ID, response string, updatedAt time.Time) error
	UpdateExitTime(ctx context.Context, db *gorm.DB, id snowflake.ID, exitAt time.Time, updatedAt time.Time) error
}
