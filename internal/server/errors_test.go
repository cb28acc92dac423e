package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/parkline/internal/clock"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	"github.com/stretchr/testify/require"
)

type stubSaleActivityService struct {
	getErr    error
	statusErr error
	exitErr   error
}

func (s *stubSaleActivityService) CreateFromSubscriptionPurchase(context.Context, saleactivitydomain.CreateFromSubscriptionRequest) (saleactivitydomain.SaleActivityView, error) {
	return saleactivitydomain.SaleActivityView{}, nil
}

func (s *stubSaleActivityService) CreateFromParkingStart(context.Context, saleactivitydomain.CreateFromParkingStartRequest) (saleactivitydomain.SaleActivityView, error) {
	return saleactivitydomain.SaleActivityView{}, nil
}

func (s *stubSaleActivityService) CreatePreTransaction(context.Context, saleactivitydomain.CreatePreTransactionRequest) (saleactivitydomain.SaleActivityView, error) {
	return saleactivitydomain.SaleActivityView{}, nil
}

func (s *stubSaleActivityService) FindActivityBetween(context.Context, time.Time, time.Time) ([]saleactivitydomain.SaleActivity, error) {
	return nil, nil
}

func (s *stubSaleActivityService) FindInFlightByUser(context.Context, snowflake.ID) ([]saleactivitydomain.SaleActivity, error) {
	return nil, nil
}

func (s *stubSaleActivityService) Filter(activities []saleactivitydomain.SaleActivity, _ saleactivitydomain.RecordCategory) []saleactivitydomain.SaleActivity {
	return activities
}

func (s *stubSaleActivityService) GetByID(context.Context, snowflake.ID) (saleactivitydomain.SaleActivity, error) {
	return saleactivitydomain.SaleActivity{}, s.getErr
}

func (s *stubSaleActivityService) UpdateStatus(context.Context, snowflake.ID, saleactivitydomain.ParkingStatus) error {
	return s.statusErr
}

func (s *stubSaleActivityService) UpdateGateResponse(context.Context, snowflake.ID, string) error {
	return nil
}

func (s *stubSaleActivityService) UpdateExitTime(context.Context, snowflake.ID, time.Time) error {
	return s.exitErr
}

func newTestServer(t *testing.T, svc saleactivitydomain.Service) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	srv := NewServer(ServerParams{
		Gin:             NewEngine(nil),
		Clock:           clock.NewFakeClock(time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)),
		SaleActivitySvc: svc,
	})
	srv.RegisterAPIRoutes()
	return srv
}

func performRequest(srv *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeErrorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Type
}

func TestGetSaleRecordNotFoundMapsTo404(t *testing.T) {
	srv := newTestServer(t, &stubSaleActivityService{getErr: saleactivitydomain.ErrActivityNotFound})

	rec := performRequest(srv, http.MethodGet, "/v1/sales/records/123456789", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decodeErrorType(t, rec))
}

func TestUpdateStatusIllegalTransitionMapsTo422(t *testing.T) {
	srv := newTestServer(t, &stubSaleActivityService{statusErr: saleactivitydomain.ErrInvalidStatusTransition})

	rec := performRequest(srv, http.MethodPatch, "/v1/sales/records/123456789/status",
		[]byte(`{"status":"COMPLETED"}`))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "invalid_transition", decodeErrorType(t, rec))
}

func TestUpdateExitTimeBeforeEntryMapsTo400(t *testing.T) {
	srv := newTestServer(t, &stubSaleActivityService{exitErr: saleactivitydomain.ErrExitBeforeEntry})

	rec := performRequest(srv, http.MethodPatch, "/v1/sales/records/123456789/exit-time",
		[]byte(`{"exit_time":"2024-03-14T08:00:00Z"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", decodeErrorType(t, rec))
}

func TestListSaleRecordsRejectsBadStart(t *testing.T) {
	srv := newTestServer(t, &stubSaleActivityService{})

	rec := performRequest(srv, http.MethodGet, "/v1/sales/records?start=not-a-date", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", decodeErrorType(t, rec))
}

func TestInvalidRecordIDMapsTo400(t *testing.T) {
	srv := newTestServer(t, &stubSaleActivityService{})

	rec := performRequest(srv, http.MethodGet, "/v1/sales/records/not-an-id", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", decodeErrorType(t, rec))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSaleActivityService{})

	rec := performRequest(srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
