package stripe

import (
	"errors"
	"testing"

	paymentdomain "github.com/smallbiznis/parkline/internal/providers/payment/domain"
	"github.com/stripe/stripe-go/v82"
)

func TestClassifyStripeErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		typ  stripe.ErrorType
		want paymentdomain.ErrorKind
	}{
		{"authentication", stripe.ErrorType("authentication_error"), paymentdomain.ErrorKindAuthentication},
		{"invalid request", stripe.ErrorTypeInvalidRequest, paymentdomain.ErrorKindInvalidRequest},
		{"card", stripe.ErrorTypeCard, paymentdomain.ErrorKindCard},
		{"api", stripe.ErrorTypeAPI, paymentdomain.ErrorKindAPI},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify(&stripe.Error{Type: tc.typ, Msg: "boom"})

			var gwErr *paymentdomain.GatewayError
			if !errors.As(err, &gwErr) {
				t.Fatalf("expected GatewayError, got %T", err)
			}
			if gwErr.Kind != tc.want {
				t.Fatalf("kind = %s, want %s", gwErr.Kind, tc.want)
			}
		})
	}
}

func TestClassifyNonStripeErrorIsConnectivity(t *testing.T) {
	err := classify(errors.New("dial tcp: connection refused"))

	var gwErr *paymentdomain.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %T", err)
	}
	if gwErr.Kind != paymentdomain.ErrorKindConnectivity {
		t.Fatalf("kind = %s, want connectivity", gwErr.Kind)
	}
}

func TestSubscriptionRefHandlesMissingParent(t *testing.T) {
	if got := subscriptionRef(nil); got != "" {
		t.Fatalf("nil invoice ref = %q", got)
	}
	if got := subscriptionRef(&stripe.Invoice{}); got != "" {
		t.Fatalf("invoice without parent ref = %q", got)
	}

	inv := &stripe.Invoice{
		Parent: &stripe.InvoiceParent{
			SubscriptionDetails: &stripe.InvoiceParentSubscriptionDetails{
				Subscription: &stripe.Subscription{ID: "sub_123"},
			},
		},
	}
	if got := subscriptionRef(inv); got != "sub_123" {
		t.Fatalf("ref = %q, want sub_123", got)
	}
}
