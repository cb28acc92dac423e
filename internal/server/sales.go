package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	"github.com/samber/lo"
)

type createSaleRecordRequest struct {
	UserID         string `json:"user_id"`
	SubscriptionID string `json:"subscription_id"`
}

// CreateSaleRecord records a subscription purchase as a sale activity.
func (s *Server) CreateSaleRecord(c *gin.Context) {
	var req createSaleRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := parseSnowflakeID(req.UserID)
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user_id"))
		return
	}
	subscriptionID, err := parseSnowflakeID(req.SubscriptionID)
	if err != nil {
		AbortWithError(c, newValidationError("subscription_id", "invalid_subscription_id", "invalid subscription_id"))
		return
	}

	resp, err := s.saleActivitySvc.CreateFromSubscriptionPurchase(c.Request.Context(), saleactivitydomain.CreateFromSubscriptionRequest{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// ListSaleRecords lists activities in a time window, sliced by category.
func (s *Server) ListSaleRecords(c *gin.Context) {
	var query struct {
		Type  string `form:"type"`
		Start string `form:"start"`
		End   string `form:"end"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	start, err := parseOptionalTime(query.Start, false)
	if err != nil {
		AbortWithError(c, newValidationError("start", "invalid_start", "invalid start"))
		return
	}
	end, err := parseOptionalTime(query.End, true)
	if err != nil {
		AbortWithError(c, newValidationError("end", "invalid_end", "invalid end"))
		return
	}

	// Default window is the trailing 24 hours.
	now := s.clock.Now()
	if end == nil {
		end = &now
	}
	if start == nil {
		from := end.Add(-24 * time.Hour)
		start = &from
	}

	category := saleactivitydomain.RecordCategory(strings.TrimSpace(query.Type))
	if category == "" {
		category = saleactivitydomain.CategoryAll
	}

	activities, err := s.saleActivitySvc.FindActivityBetween(c.Request.Context(), *start, *end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filtered := s.saleActivitySvc.Filter(activities, category)
	views := lo.Map(filtered, func(a saleactivitydomain.SaleActivity, _ int) saleactivitydomain.SaleActivityView {
		return saleactivitydomain.NewView(a)
	})

	c.JSON(http.StatusOK, gin.H{"data": views})
}

// ListInFlightSaleRecords lists a user's open parking sessions.
func (s *Server) ListInFlightSaleRecords(c *gin.Context) {
	userID, err := parseSnowflakeID(c.Query("user_id"))
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user_id"))
		return
	}

	activities, err := s.saleActivitySvc.FindInFlightByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := lo.Map(activities, func(a saleactivitydomain.SaleActivity, _ int) saleactivitydomain.SaleActivityView {
		return saleactivitydomain.NewView(a)
	})

	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (s *Server) GetSaleRecordByID(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	activity, err := s.saleActivitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": saleactivitydomain.NewView(activity)})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateSaleRecordStatus(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status := saleactivitydomain.ParkingStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err := s.saleActivitySvc.UpdateStatus(c.Request.Context(), id, status); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type updateGateResponseRequest struct {
	GateResponse string `json:"gate_response"`
}

func (s *Server) UpdateSaleRecordGateResponse(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateGateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.saleActivitySvc.UpdateGateResponse(c.Request.Context(), id, strings.TrimSpace(req.GateResponse)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type updateExitTimeRequest struct {
	ExitTime string `json:"exit_time"`
}

func (s *Server) UpdateSaleRecordExitTime(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateExitTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	exitAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ExitTime))
	if err != nil {
		AbortWithError(c, newValidationError("exit_time", "invalid_exit_time", "invalid exit_time"))
		return
	}

	if err := s.saleActivitySvc.UpdateExitTime(c.Request.Context(), id, exitAt); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
