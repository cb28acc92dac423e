package service

import (
	"context"
	"time"

	plandomain "github.com/smallbiznis/parkline/internal/plan/domain"
	pretransactiondomain "github.com/smallbiznis/parkline/internal/pretransaction/domain"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	planRepo     plandomain.Repository
	activityRepo saleactivitydomain.Repository
	activitySvc  saleactivitydomain.Service
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger

	PlanRepo     plandomain.Repository
	ActivityRepo saleactivitydomain.Repository
	ActivitySvc  saleactivitydomain.Service
}

func NewService(p ServiceParam) pretransactiondomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("pretransaction.service"),

		planRepo:     p.PlanRepo,
		activityRepo: p.ActivityRepo,
		activitySvc:  p.ActivitySvc,
	}
}

// Generate implements domain.Service. The window is the full calendar day
// after the reference instant's day, [startOfDay(ref+1d), startOfDay(ref+2d))
// in UTC. Subscriptions that already have a record stamped inside the window
// are skipped, so re-running generation for the same window is safe.
func (s *Service) Generate(ctx context.Context, req pretransactiondomain.GenerateRequest) (pretransactiondomain.GenerateResponse, error) {
	windowStart := startOfDay(req.Reference.UTC().AddDate(0, 0, 1))
	windowEnd := startOfDay(req.Reference.UTC().AddDate(0, 0, 2))

	subscriptions, err := s.planRepo.FindRenewingBetween(ctx, s.db, windowStart, windowEnd)
	if err != nil {
		return pretransactiondomain.GenerateResponse{}, err
	}

	resp := pretransactiondomain.GenerateResponse{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Records:     make([]saleactivitydomain.SaleActivityView, 0, len(subscriptions)),
	}

	for _, subscription := range subscriptions {
		exists, err := s.activityRepo.ExistsForSubscriptionBetween(ctx, s.db, subscription.ID, windowStart, windowEnd)
		if err != nil {
			return pretransactiondomain.GenerateResponse{}, err
		}
		if exists {
			resp.Skipped++
			s.log.Debug("pre-transaction already generated for window",
				zap.String("subscription_id", subscription.ID.String()),
				zap.Time("window_start", windowStart),
			)
			continue
		}

		view, err := s.activitySvc.CreatePreTransaction(ctx, saleactivitydomain.CreatePreTransactionRequest{
			UserID:           subscription.UserID,
			SubscriptionID:   subscription.ID,
			SubscriptionDate: subscription.RenewalDate,
		})
		if err != nil {
			return pretransactiondomain.GenerateResponse{}, err
		}
		resp.Records = append(resp.Records, view)
	}

	s.log.Info("next-day pre-transactions generated",
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
		zap.Int("generated", len(resp.Records)),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
