// Package domain contains parking plan and plan subscription models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SubscriptionStatus represents lifecycle states for a plan subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
	SubscriptionStatusExpired  SubscriptionStatus = "EXPIRED"
)

// ParkingPlan is a lot's recurring parking product.
type ParkingPlan struct {
	ID           snowflake.ID    `gorm:"primaryKey"`
	LotID        snowflake.ID    `gorm:"not null;index"`
	PlanName     string          `gorm:"type:text;not null"`
	ChargeAmount decimal.Decimal `gorm:"type:numeric;not null"`
	Interval     string          `gorm:"column:billing_interval;type:text;not null;default:'monthly'"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ParkingPlan) TableName() string { return "parking_plans" }

// PlanSubscription is a user's enrollment in a plan. BillingRef carries the
// external billing system's subscription id used for invoice reconciliation.
type PlanSubscription struct {
	ID               snowflake.ID       `gorm:"primaryKey"`
	UserID           snowflake.ID       `gorm:"not null;index"`
	PlanID           snowflake.ID       `gorm:"not null;index"`
	Status           SubscriptionStatus `gorm:"type:text;not null"`
	PlanStartDate    time.Time          `gorm:"not null"`
	PlanExpiryDate   *time.Time         `gorm:""`
	RenewalDate      time.Time          `gorm:"not null;index"`
	ChargeAmount     decimal.Decimal    `gorm:"type:numeric;not null"`
	PaymentProfileID snowflake.ID       `gorm:"not null"`
	BillingRef       string             `gorm:"type:text;not null"`
	Metadata         datatypes.JSONMap  `gorm:"type:jsonb"`
	CreatedAt        time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PlanSubscription) TableName() string { return "plan_subscriptions" }
