// Package domain contains the sale activity model, its lifecycle states and
// the store/service contracts around it.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ParkingStatus is the lifecycle state of a parking session.
type ParkingStatus string

const (
	ParkingStatusStarted   ParkingStatus = "STARTED"
	ParkingStatusInFlight  ParkingStatus = "IN_FLIGHT"
	ParkingStatusCompleted ParkingStatus = "COMPLETED"
	ParkingStatusException ParkingStatus = "EXCEPTION"
)

// transitions is the legal state machine: entry confirmation moves STARTED to
// IN_FLIGHT, exit closes the session, and any state may degrade to EXCEPTION
// on anomaly detection.
var transitions = map[ParkingStatus][]ParkingStatus{
	ParkingStatusStarted:   {ParkingStatusInFlight, ParkingStatusException},
	ParkingStatusInFlight:  {ParkingStatusCompleted, ParkingStatusException},
	ParkingStatusCompleted: {ParkingStatusException},
	ParkingStatusException: {},
}

// Valid reports whether s is a known status.
func (s ParkingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s ParkingStatus) CanTransitionTo(next ParkingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SaleActivity is one billing/parking-session record tying a user, a plan, a
// charge and a gate entry/exit window together. User contact fields and the
// plan name are snapshots taken at creation time.
type SaleActivity struct {
	ID                   snowflake.ID      `gorm:"primaryKey"`
	LotID                snowflake.ID      `gorm:"not null;index"`
	UserID               snowflake.ID      `gorm:"not null;index"`
	UserEmail            string            `gorm:"type:text"`
	UserPhoneNumber      string            `gorm:"type:text"`
	UserLicensePlate     string            `gorm:"type:text"`
	PlanID               snowflake.ID      `gorm:"index"`
	PlanName             string            `gorm:"type:text"`
	PlanSubscriptionID   *snowflake.ID     `gorm:"index"`
	PlanSubscriptionDate *time.Time        `gorm:""`
	PlanExpiryDate       *time.Time        `gorm:""`
	ChargeAmount         decimal.Decimal   `gorm:"type:numeric;not null"`
	ServiceAmount        decimal.Decimal   `gorm:"type:numeric;not null"`
	NetAmount            decimal.Decimal   `gorm:"type:numeric;not null"`
	PaymentProfileID     snowflake.ID      `gorm:""`
	EntryDatetime        *time.Time        `gorm:"index"`
	ExitDatetime         *time.Time        `gorm:""`
	ParkingStatus        ParkingStatus     `gorm:"type:text"`
	ExceptionFlag        *string           `gorm:"type:text"`
	InvoiceID            *string           `gorm:"type:text"`
	GateResponse         *string           `gorm:"type:text"`
	Metadata             datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SaleActivity) TableName() string { return "sale_activities" }

// InFlight reports whether the session has started but not recorded an exit.
func (a SaleActivity) InFlight() bool {
	return a.EntryDatetime != nil && a.ExitDatetime == nil
}
