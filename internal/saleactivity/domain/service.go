package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// RecordCategory selects a reporting slice of sale activities.
type RecordCategory string

const (
	CategoryAll       RecordCategory = "all"
	CategorySales     RecordCategory = "sales"
	CategoryInFlight  RecordCategory = "inflight"
	CategoryPark      RecordCategory = "park"
	CategoryException RecordCategory = "exception"
)

type CreateFromSubscriptionRequest struct {
	UserID         snowflake.ID
	SubscriptionID snowflake.ID
}

type CreateFromParkingStartRequest struct {
	UserID snowflake.ID
	PlanID snowflake.ID
}

// CreatePreTransactionRequest creates a forward-dated record ahead of an
// actual renewal. SubscriptionDate is the renewal instant being pre-billed.
type CreatePreTransactionRequest struct {
	UserID           snowflake.ID
	SubscriptionID   snowflake.ID
	SubscriptionDate time.Time
}

// SaleActivityView is the reporting shape returned to API consumers.
type SaleActivityView struct {
	ID                   string          `json:"id"`
	LotID                string          `json:"lot_id"`
	UserID               string          `json:"user_id"`
	UserEmail            string          `json:"user_email,omitempty"`
	UserPhoneNumber      string          `json:"user_phone_number,omitempty"`
	UserLicensePlate     string          `json:"user_license_plate,omitempty"`
	PlanID               string          `json:"plan_id,omitempty"`
	PlanName             string          `json:"plan_name,omitempty"`
	PlanSubscriptionDate *time.Time      `json:"plan_subscription_date,omitempty"`
	PlanExpiryDate       *time.Time      `json:"plan_expiry_date,omitempty"`
	ChargeAmount         decimal.Decimal `json:"charge_amount"`
	ServiceAmount        decimal.Decimal `json:"service_amount"`
	NetAmount            decimal.Decimal `json:"net_amount"`
	PaymentProfileID     string          `json:"payment_profile_id,omitempty"`
	EntryDatetime        *time.Time      `json:"entry_datetime,omitempty"`
	ExitDatetime         *time.Time      `json:"exit_datetime,omitempty"`
	ParkingStatus        ParkingStatus   `json:"parking_status,omitempty"`
	ExceptionFlag        *string         `json:"exception_flag,omitempty"`
	InvoiceID            *string         `json:"invoice_id,omitempty"`
	GateResponse         *string         `json:"gate_response,omitempty"`
}

// NewView assembles the reporting shape from a stored record.
func NewView(activity SaleActivity) SaleActivityView {
	view := SaleActivityView{
		ID:                   activity.ID.String(),
		LotID:                activity.LotID.String(),
		UserID:               activity.UserID.String(),
		UserEmail:            activity.UserEmail,
		UserPhoneNumber:      activity.UserPhoneNumber,
		UserLicensePlate:     activity.UserLicensePlate,
		PlanName:             activity.PlanName,
		PlanSubscriptionDate: activity.PlanSubscriptionDate,
		PlanExpiryDate:       activity.PlanExpiryDate,
		ChargeAmount:         activity.ChargeAmount,
		ServiceAmount:        activity.ServiceAmount,
		NetAmount:            activity.NetAmount,
		EntryDatetime:        activity.EntryDatetime,
		ExitDatetime:         activity.ExitDatetime,
		ParkingStatus:        activity.ParkingStatus,
		ExceptionFlag:        activity.ExceptionFlag,
		InvoiceID:            activity.InvoiceID,
		GateResponse:         activity.GateResponse,
	}
	if activity.PlanID != 0 {
		view.PlanID = activity.PlanID.String()
	}
	if activity.PaymentProfileID != 0 {
		view.PaymentProfileID = activity.PaymentProfileID.String()
	}
	return view
}

var (
	ErrActivityNotFound        = errors.New("activity_not_found")
	ErrInvalidStatus           = errors.New("invalid_parking_status")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrMissingEntryTime        = errors.New("missing_entry_time")
	ErrExitBeforeEntry         = errors.New("exit_before_entry")
)

type Service interface {
	CreateFromSubscriptionPurchase(ctx context.Context, req CreateFromSubscriptionRequest) (SaleActivityView, error)
	CreateFromParkingStart(ctx context.Context, req CreateFromParkingStartRequest) (SaleActivityView, error)
	CreatePreTransaction(ctx context.Context, req CreatePreTransactionRequest) (SaleActivityView, error)
	FindActivityBetween(ctx context.Context, start, end time.Time) ([]SaleActivity, error)
	FindInFlightByUser(ctx context.Context, userID snowflake.ID) ([]SaleActivity, error)
	Filter(activities []SaleActivity, category RecordCategory) []SaleActivity
	GetByID(ctx context.Context, id snowflake.ID) (SaleActivity, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status ParkingStatus) error
	UpdateGateResponse(ctx context.Context, id snowflake.ID, response string) error
	UpdateExitTime(ctx context.Context, id snowflake.ID, exitAt time.Time) error
}
