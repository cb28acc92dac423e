package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pretransactiondomain "github.com/smallbiznis/parkline/internal/pretransaction/domain"
)

// GeneratePreTransactions creates forward-dated records for subscriptions
// renewing on the day after the reference date. The date query parameter is
// optional and defaults to now.
func (s *Server) GeneratePreTransactions(c *gin.Context) {
	ref, err := parseOptionalTime(c.Query("date"), false)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}
	if ref == nil {
		now := s.clock.Now()
		ref = &now
	}

	resp, err := s.preTransactionSvc.Generate(c.Request.Context(), pretransactiondomain.GenerateRequest{
		Reference: *ref,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
