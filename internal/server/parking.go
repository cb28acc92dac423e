package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
)

type startParkingSessionRequest struct {
	UserID string `json:"user_id"`
	PlanID string `json:"plan_id"`
}

// StartParkingSession opens a gate-entry session with a zero charge.
func (s *Server) StartParkingSession(c *gin.Context) {
	var req startParkingSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := parseSnowflakeID(req.UserID)
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user_id"))
		return
	}
	planID, err := parseSnowflakeID(req.PlanID)
	if err != nil {
		AbortWithError(c, newValidationError("plan_id", "invalid_plan_id", "invalid plan_id"))
		return
	}

	resp, err := s.saleActivitySvc.CreateFromParkingStart(c.Request.Context(), saleactivitydomain.CreateFromParkingStartRequest{
		UserID: userID,
		PlanID: planID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}
