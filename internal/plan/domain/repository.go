package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("plan_not_found")
	ErrSubscriptionNotFound = errors.New("subscription_not_found")
)

type Repository interface {
	FindPlanByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ParkingPlan, error)
	FindSubscriptionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PlanSubscription, error)
	// FindRenewingBetween returns active subscriptions whose renewal falls in
	// the half-open window [start, end), ordered by renewal date.
	FindRenewingBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]PlanSubscription, error)
}
