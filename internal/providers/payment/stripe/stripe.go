// Package stripe adapts the Stripe invoice API to the payment gateway domain.
package stripe

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/parkline/internal/config"
	paymentdomain "github.com/smallbiznis/parkline/internal/providers/payment/domain"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type Gateway struct {
	client *stripe.Client
	log    *zap.Logger
}

// New builds a gateway bound to the configured API key. The key lives on the
// client instance, not in process-global state.
func New(cfg config.Config, log *zap.Logger) paymentdomain.Gateway {
	return &Gateway{
		client: stripe.NewClient(cfg.StripeAPIKey, nil),
		log:    log.Named("payment.stripe"),
	}
}

func (g *Gateway) ListRecentInvoices(ctx context.Context, customerToken string, limit int64) ([]paymentdomain.Invoice, error) {
	customerToken = strings.TrimSpace(customerToken)
	if customerToken == "" {
		return nil, &paymentdomain.GatewayError{
			Kind: paymentdomain.ErrorKindInvalidRequest,
			Err:  paymentdomain.ErrMissingCustomerToken,
		}
	}
	if limit <= 0 {
		limit = 3
	}

	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerToken),
	}
	params.Limit = stripe.Int64(limit)

	invoices := make([]paymentdomain.Invoice, 0, limit)
	for inv, err := range g.client.V1Invoices.List(ctx, params) {
		if err != nil {
			return nil, classify(err)
		}
		invoices = append(invoices, paymentdomain.Invoice{
			ID:              inv.ID,
			SubscriptionRef: subscriptionRef(inv),
		})
		if int64(len(invoices)) >= limit {
			break
		}
	}
	return invoices, nil
}

func subscriptionRef(inv *stripe.Invoice) string {
	if inv == nil || inv.Parent == nil || inv.Parent.SubscriptionDetails == nil {
		return ""
	}
	if inv.Parent.SubscriptionDetails.Subscription == nil {
		return ""
	}
	return inv.Parent.SubscriptionDetails.Subscription.ID
}

func classify(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &paymentdomain.GatewayError{Kind: paymentdomain.ErrorKindConnectivity, Err: err}
	}

	kind := paymentdomain.ErrorKindAPI
	switch stripeErr.Type {
	// stripe-go v82 removed the ErrorTypeAuthentication constant; the API
	// still reports this type as "authentication_error".
	case stripe.ErrorType("authentication_error"):
		kind = paymentdomain.ErrorKindAuthentication
	case stripe.ErrorTypeInvalidRequest:
		kind = paymentdomain.ErrorKindInvalidRequest
	case stripe.ErrorTypeCard:
		kind = paymentdomain.ErrorKindCard
	}
	return &paymentdomain.GatewayError{Kind: kind, Err: err}
}
