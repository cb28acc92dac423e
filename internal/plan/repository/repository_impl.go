package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	plandomain "github.com/smallbiznis/parkline/internal/plan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() plandomain.Repository {
	return &repo{}
}

func (r *repo) FindPlanByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*plandomain.ParkingPlan, error) {
	var plan plandomain.ParkingPlan
	err := db.WithContext(ctx).Raw(
		`SELECT id, lot_id, plan_name, charge_amount, billing_interval, created_at, updated_at
		 FROM parking_plans WHERE id = ?`,
		id,
	).Scan(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if plan.ID == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (r *repo) FindSubscriptionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*plandomain.PlanSubscription, error) {
	var subscription plandomain.PlanSubscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, plan_id, status, plan_start_date, plan_expiry_date, renewal_date,
			charge_amount, payment_profile_id, billing_ref, metadata, created_at, updated_at
		 FROM plan_subscriptions WHERE id = ?`,
		id,
	).Scan(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if subscription.ID == 0 {
		return nil, nil
	}
	return &subscription, nil
}

func (r *repo) FindRenewingBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]plandomain.PlanSubscription, error) {
	var subscriptions []plandomain.PlanSubscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, plan_id, status, plan_start_date, plan_expiry_date, renewal_date,
			charge_amount, payment_profile_id, billing_ref, metadata, created_at, updated_at
		 FROM plan_subscriptions
		 WHERE status = ? AND renewal_date >= ? AND renewal_date < ?
		 ORDER BY renewal_date ASC, id ASC`,
		plandomain.SubscriptionStatusActive,
		start,
		end,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}
