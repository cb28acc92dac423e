// Package domain defines next-day pre-transaction generation.
package domain

import (
	"context"
	"time"

	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
)

type GenerateRequest struct {
	// Reference is the instant generation is anchored on; the window covers
	// the full day after its calendar day.
	Reference time.Time
}

type GenerateResponse struct {
	WindowStart time.Time                             `json:"window_start"`
	WindowEnd   time.Time                             `json:"window_end"`
	Records     []saleactivitydomain.SaleActivityView `json:"records"`
	Skipped     int                                   `json:"skipped"`
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}
