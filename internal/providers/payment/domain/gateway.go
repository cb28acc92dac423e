// Package domain defines the payment gateway capability consumed by billing.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Invoice is an externally issued invoice, read-only to this system. Only the
// id and the subscription linkage are consumed; nothing else is persisted.
type Invoice struct {
	ID              string
	SubscriptionRef string
}

// ErrorKind classifies gateway failures.
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindInvalidRequest ErrorKind = "invalid_request"
	ErrorKindConnectivity   ErrorKind = "connectivity"
	ErrorKindCard           ErrorKind = "card"
	ErrorKindAPI            ErrorKind = "api"
)

// GatewayError wraps a provider failure with its kind so callers can log a
// meaningful cause without depending on provider error types.
type GatewayError struct {
	Kind ErrorKind
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s error: %v", e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

var ErrMissingCustomerToken = errors.New("missing_customer_token")

// Gateway lists recent invoices for a gateway customer. Implementations own
// retries and timeouts; callers treat a single call as synchronous.
type Gateway interface {
	ListRecentInvoices(ctx context.Context, customerToken string, limit int64) ([]Invoice, error)
}
