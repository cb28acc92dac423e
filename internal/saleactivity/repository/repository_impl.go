package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() saleactivitydomain.Repository {
	return &repo{}
}

const selectColumns = `id, lot_id, user_id, user_email, user_phone_number, user_license_plate,
	plan_id, plan_name, plan_subscription_id, plan_subscription_date, plan_expiry_date,
	charge_amount, service_amount, net_amount, payment_profile_id,
	entry_datetime, exit_datetime, parking_status, exception_flag, invoice_id, gate_response,
	metadata, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *saleactivitydomain.SaleActivity) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sale_activities (
			id, lot_id, user_id, user_email, user_phone_number, user_license_plate,
			plan_id, plan_name, plan_subscription_id, plan_subscription_date, plan_expiry_date,
			charge_amount, service_amount, net_amount, payment_profile_id,
			entry_datetime, exit_datetime, parking_status, exception_flag, invoice_id, gate_response,
			metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID,
		activity.LotID,
		activity.UserID,
		activity.UserEmail,
		activity.UserPhoneNumber,
		activity.UserLicensePlate,
		activity.PlanID,
		activity.PlanName,
		activity.PlanSubscriptionID,
		activity.PlanSubscriptionDate,
		activity.PlanExpiryDate,
		activity.ChargeAmount,
		activity.ServiceAmount,
		activity.NetAmount,
		activity.PaymentProfileID,
		activity.EntryDatetime,
		activity.ExitDatetime,
		activity.ParkingStatus,
		activity.ExceptionFlag,
		activity.InvoiceID,
		activity.GateResponse,
		activity.Metadata,
		activity.CreatedAt,
		activity.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*saleactivitydomain.SaleActivity, error) {
	var activity saleactivitydomain.SaleActivity
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+` FROM sale_activities WHERE id = ?`,
		id,
	).Scan(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if activity.ID == 0 {
		return nil, nil
	}
	return &activity, nil
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]saleactivitydomain.SaleActivity, error) {
	var activities []saleactivitydomain.SaleActivity
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+` FROM sale_activities WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID,
	).Scan(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repo) FindBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]saleactivitydomain.SaleActivity, error) {
	var activities []saleactivitydomain.SaleActivity
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+` FROM sale_activities
		 WHERE (entry_datetime >= ? AND entry_datetime < ?)
		    OR (plan_subscription_date >= ? AND plan_subscription_date < ?)
		 ORDER BY created_at ASC, id ASC`,
		start, end, start, end,
	).Scan(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repo) ExistsForSubscriptionBetween(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, start, end time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM sale_activities
		 WHERE plan_subscription_id = ? AND plan_subscription_date >= ? AND plan_subscription_date < ?`,
		subscriptionID, start, end,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) UpdateParkingStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status saleactivitydomain.ParkingStatus, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sale_activities SET parking_status = ?, updated_at = ? WHERE id = ?`,
		status, updatedAt, id,
	).Error
}

func (r *repo) UpdateGateResponse(ctx context.Context, db *gorm.DB, id snowflake.ID, response string, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sale_activities SET gate_response = ?, updated_at = ? WHERE id = ?`,
		response, updatedAt, id,
	).Error
}

func (r *repo) UpdateExitTime(ctx context.Context, db *gorm.DB, id snowflake.ID, exitAt time.Time, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sale_activities SET exit_datetime = ?, updated_at = ? WHERE id = ?`,
		exitAt, updatedAt, id,
	).Error
}
