package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/parkline/internal/billing"
	"github.com/smallbiznis/parkline/internal/clock"
	"github.com/smallbiznis/parkline/internal/config"
	plandomain "github.com/smallbiznis/parkline/internal/plan/domain"
	paymentdomain "github.com/smallbiznis/parkline/internal/providers/payment/domain"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	userdomain "github.com/smallbiznis/parkline/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID      *snowflake.Node
	clock      clock.Clock
	billingCfg *config.BillingConfigHolder

	repo     saleactivitydomain.Repository
	userRepo userdomain.Repository
	planRepo plandomain.Repository
	gateway  paymentdomain.Gateway
}

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	BillingCfg *config.BillingConfigHolder

	Repo     saleactivitydomain.Repository
	UserRepo userdomain.Repository
	PlanRepo plandomain.Repository
	Gateway  paymentdomain.Gateway
}

func NewService(p ServiceParam) saleactivitydomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("saleactivity.service"),

		genID:      p.GenID,
		clock:      p.Clock,
		billingCfg: p.BillingCfg,

		repo:     p.Repo,
		userRepo: p.UserRepo,
		planRepo: p.PlanRepo,
		gateway:  p.Gateway,
	}
}

// CreateFromSubscriptionPurchase implements domain.Service.
func (s *Service) CreateFromSubscriptionPurchase(ctx context.Context, req saleactivitydomain.CreateFromSubscriptionRequest) (saleactivitydomain.SaleActivityView, error) {
	return s.createForSubscription(ctx, req.UserID, req.SubscriptionID, nil)
}

// CreatePreTransaction implements domain.Service. It shares the purchase
// creation path but stamps the forward renewal instant as the subscription
// date, which keys the generator's re-invocation guard.
func (s *Service) CreatePreTransaction(ctx context.Context, req saleactivitydomain.CreatePreTransactionRequest) (saleactivitydomain.SaleActivityView, error) {
	date := req.SubscriptionDate
	return s.createForSubscription(ctx, req.UserID, req.SubscriptionID, &date)
}

// createForSubscription is the single creation path for subscription-driven
// records. subscriptionDate overrides the subscription's start instant when
// set (pre-transactions); amounts and reconciliation are identical either way.
func (s *Service) createForSubscription(ctx context.Context, userID, subscriptionID snowflake.ID, subscriptionDate *time.Time) (saleactivitydomain.SaleActivityView, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}
	if user == nil {
		return saleactivitydomain.SaleActivityView{}, userdomain.ErrUserNotFound
	}

	subscription, err := s.planRepo.FindSubscriptionByID(ctx, s.db, subscriptionID)
	if err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}
	if subscription == nil {
		return saleactivitydomain.SaleActivityView{}, plandomain.ErrSubscriptionNotFound
	}

	plan, err := s.planRepo.FindPlanByID(ctx, s.db, subscription.PlanID)
	if err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}
	if plan == nil {
		return saleactivitydomain.SaleActivityView{}, plandomain.ErrPlanNotFound
	}

	invoiceID := s.reconcileInvoice(ctx, user.BillingToken, subscription.BillingRef)

	cfg := s.billingCfg.Get()
	charge := subscription.ChargeAmount
	serviceAmount, netAmount := billing.Split(charge, billing.FeeFraction(cfg.ServiceFeeFraction))

	now := s.clock.Now()
	subID := subscription.ID
	stampedDate := subscription.PlanStartDate
	if subscriptionDate != nil {
		stampedDate = *subscriptionDate
	}
	activity := &saleactivitydomain.SaleActivity{
		ID:                   s.genID.Generate(),
		LotID:                plan.LotID,
		UserID:               user.ID,
		UserEmail:            user.Email,
		UserPhoneNumber:      user.PhoneNumber,
		UserLicensePlate:     user.LicensePlate,
		PlanID:               plan.ID,
		PlanName:             plan.PlanName,
		PlanSubscriptionID:   &subID,
		PlanSubscriptionDate: &stampedDate,
		PlanExpiryDate:       subscription.PlanExpiryDate,
		ChargeAmount:         charge,
		ServiceAmount:        serviceAmount,
		NetAmount:            netAmount,
		PaymentProfileID:     subscription.PaymentProfileID,
		InvoiceID:            invoiceID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Insert(ctx, s.db, activity); err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}

	return saleactivitydomain.NewView(*activity), nil
}

// reconcileInvoice scans the customer's recent invoices for one billed
// against billingRef. Gateway failures are logged and swallowed; the sale
// activity is the source of truth for the charge and must exist even when
// invoice linkage is incomplete.
func (s *Service) reconcileInvoice(ctx context.Context, customerToken, billingRef string) *string {
	cfg := s.billingCfg.Get()
	invoices, err := s.gateway.ListRecentInvoices(ctx, customerToken, int64(cfg.InvoiceLookback))
	if err != nil {
		s.log.Warn("invoice reconciliation failed, leaving invoice unset",
			zap.String("billing_ref", billingRef),
			zap.Error(err),
		)
		return nil
	}

	for _, invoice := range invoices {
		if invoice.SubscriptionRef == billingRef {
			id := invoice.ID
			return &id
		}
	}

	s.log.Debug("no invoice matched subscription",
		zap.String("billing_ref", billingRef),
		zap.Int("invoices_seen", len(invoices)),
	)
	return nil
}

// CreateFromParkingStart implements domain.Service. Billing is deferred to
// exit, so the charge and its splits start at zero and no reconciliation is
// attempted.
func (s *Service) CreateFromParkingStart(ctx context.Context, req saleactivitydomain.CreateFromParkingStartRequest) (saleactivitydomain.SaleActivityView, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, req.UserID)
	if err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}
	if user == nil {
		return saleactivitydomain.SaleActivityView{}, userdomain.ErrUserNotFound
	}

	plan, err := s.planRepo.FindPlanByID(ctx, s.db, req.PlanID)
	if err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}
	if plan == nil {
		return saleactivitydomain.SaleActivityView{}, plandomain.ErrPlanNotFound
	}

	cfg := s.billingCfg.Get()
	serviceAmount, netAmount := billing.Split(decimal.Zero, billing.FeeFraction(cfg.ServiceFeeFraction))

	now := s.clock.Now()
	entry := now
	activity := &saleactivitydomain.SaleActivity{
		ID:               s.genID.Generate(),
		LotID:            plan.LotID,
		UserID:           user.ID,
		UserEmail:        user.Email,
		UserPhoneNumber:  user.PhoneNumber,
		UserLicensePlate: user.LicensePlate,
		PlanID:           plan.ID,
		PlanName:         plan.PlanName,
		ChargeAmount:     decimal.Zero,
		ServiceAmount:    serviceAmount,
		NetAmount:        netAmount,
		EntryDatetime:    &entry,
		ParkingStatus:    saleactivitydomain.ParkingStatusStarted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Insert(ctx, s.db, activity); err != nil {
		return saleactivitydomain.SaleActivityView{}, err
	}

	return saleactivitydomain.NewView(*activity), nil
}

// FindActivityBetween implements domain.Service.
func (s *Service) FindActivityBetween(ctx context.Context, start, end time.Time) ([]saleactivitydomain.SaleActivity, error) {
	return s.repo.FindBetween(ctx, s.db, start, end)
}

// FindInFlightByUser implements domain.Service.
func (s *Service) FindInFlightByUser(ctx context.Context, userID snowflake.ID) ([]saleactivitydomain.SaleActivity, error) {
	activities, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return lo.Filter(activities, func(a saleactivitydomain.SaleActivity, _ int) bool {
		return a.InFlight()
	}), nil
}

// Filter implements domain.Service. Unknown categories yield an empty result
// rather than an error, preserved for compatibility with existing reporting
// clients.
func (s *Service) Filter(activities []saleactivitydomain.SaleActivity, category saleactivitydomain.RecordCategory) []saleactivitydomain.SaleActivity {
	switch category {
	case saleactivitydomain.CategoryAll:
		return activities
	case saleactivitydomain.CategorySales:
		return lo.Filter(activities, func(a saleactivitydomain.SaleActivity, _ int) bool {
			return !a.ChargeAmount.IsZero()
		})
	case saleactivitydomain.CategoryInFlight:
		return lo.Filter(activities, func(a saleactivitydomain.SaleActivity, _ int) bool {
			return a.ParkingStatus == saleactivitydomain.ParkingStatusInFlight
		})
	case saleactivitydomain.CategoryPark:
		return lo.Filter(activities, func(a saleactivitydomain.SaleActivity, _ int) bool {
			return a.EntryDatetime != nil
		})
	case saleactivitydomain.CategoryException:
		return lo.Filter(activities, func(a saleactivitydomain.SaleActivity, _ int) bool {
			return a.ParkingStatus == saleactivitydomain.ParkingStatusException
		})
	default:
		s.log.Warn("unknown record category, returning empty set",
			zap.String("category", string(category)),
		)
		return []saleactivitydomain.SaleActivity{}
	}
}

// GetByID implements domain.Service.
func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (saleactivitydomain.SaleActivity, error) {
	activity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return saleactivitydomain.SaleActivity{}, err
	}
	if activity == nil {
		return saleactivitydomain.SaleActivity{}, saleactivitydomain.ErrActivityNotFound
	}
	return *activity, nil
}

// UpdateStatus implements domain.Service. Transitions outside the lifecycle
// table are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, status saleactivitydomain.ParkingStatus) error {
	if !status.Valid() {
		return saleactivitydomain.ErrInvalidStatus
	}

	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !activity.ParkingStatus.CanTransitionTo(status) {
		return saleactivitydomain.ErrInvalidStatusTransition
	}

	return s.repo.UpdateParkingStatus(ctx, s.db, id, status, s.clock.Now())
}

// UpdateGateResponse implements domain.Service.
func (s *Service) UpdateGateResponse(ctx context.Context, id snowflake.ID, response string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateGateResponse(ctx, s.db, id, response, s.clock.Now())
}

// UpdateExitTime implements domain.Service. The exit instant must not
// precede the recorded entry.
func (s *Service) UpdateExitTime(ctx context.Context, id snowflake.ID, exitAt time.Time) error {
	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if activity.EntryDatetime == nil {
		return saleactivitydomain.ErrMissingEntryTime
	}
	if exitAt.Before(*activity.EntryDatetime) {
		return saleactivitydomain.ErrExitBeforeEntry
	}

	return s.repo.UpdateExitTime(ctx, s.db, id, exitAt, s.clock.Now())
}
