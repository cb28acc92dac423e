package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/parkline/internal/clock"
	pretransactiondomain "github.com/smallbiznis/parkline/internal/pretransaction/domain"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPreTransactionSvc struct {
	calls []time.Time
	resp  pretransactiondomain.GenerateResponse
	err   error
}

func (m *mockPreTransactionSvc) Generate(ctx context.Context, req pretransactiondomain.GenerateRequest) (pretransactiondomain.GenerateResponse, error) {
	m.calls = append(m.calls, req.Reference)
	if m.err != nil {
		return pretransactiondomain.GenerateResponse{}, m.err
	}
	return m.resp, nil
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Params{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Params{
		Log:               zap.NewNop(),
		Clock:             clock.NewFakeClock(time.Now()),
		PreTransactionSvc: &mockPreTransactionSvc{},
	})
	require.NoError(t, err)
}

func TestRunOnceAnchorsOnClock(t *testing.T) {
	now := time.Date(2024, 6, 1, 4, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFakeClock(now)
	svc := &mockPreTransactionSvc{
		resp: pretransactiondomain.GenerateResponse{
			Records: []saleactivitydomain.SaleActivityView{{ID: "1"}},
		},
	}

	s, err := New(Params{
		Log:               zap.NewNop(),
		Clock:             fakeClock,
		PreTransactionSvc: svc,
	})
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))
	require.Len(t, svc.calls, 1)
	require.True(t, svc.calls[0].Equal(now))
}

func TestRunOncePropagatesJobError(t *testing.T) {
	jobErr := errors.New("window query failed")
	svc := &mockPreTransactionSvc{err: jobErr}

	s, err := New(Params{
		Log:               zap.NewNop(),
		Clock:             clock.NewFakeClock(time.Now()),
		PreTransactionSvc: svc,
	})
	require.NoError(t, err)

	require.ErrorIs(t, s.RunOnce(context.Background()), jobErr)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	require.Equal(t, 24*time.Hour, cfg.RunInterval)
	require.Equal(t, 10*time.Minute, cfg.JobTimeout)

	custom := Config{RunInterval: time.Hour, JobTimeout: time.Minute}.withDefaults()
	require.Equal(t, time.Hour, custom.RunInterval)
	require.Equal(t, time.Minute, custom.JobTimeout)
}
