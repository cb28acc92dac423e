// Package server wires the HTTP surface for sale activity reporting and
// parking session control.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/parkline/internal/clock"
	"github.com/smallbiznis/parkline/internal/config"
	obsmetrics "github.com/smallbiznis/parkline/internal/observability/metrics"
	pretransactiondomain "github.com/smallbiznis/parkline/internal/pretransaction/domain"
	saleactivitydomain "github.com/smallbiznis/parkline/internal/saleactivity/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(obsmetrics.NewHTTPMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine            *gin.Engine
	cfg               config.Config
	clock             clock.Clock
	saleActivitySvc   saleactivitydomain.Service
	preTransactionSvc pretransactiondomain.Service
}

type ServerParams struct {
	fx.In

	Gin               *gin.Engine
	Cfg               config.Config
	Clock             clock.Clock
	SaleActivitySvc   saleactivitydomain.Service
	PreTransactionSvc pretransactiondomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		clock:             p.Clock,
		saleActivitySvc:   p.SaleActivitySvc,
		preTransactionSvc: p.PreTransactionSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	// -------- Sale activity reporting --------
	sales := v1.Group("/sales")
	sales.GET("/records", s.ListSaleRecords)
	sales.POST("/records", s.CreateSaleRecord)
	sales.GET("/records/inflight", s.ListInFlightSaleRecords)
	sales.GET("/records/:id", s.GetSaleRecordByID)
	sales.PATCH("/records/:id/status", s.UpdateSaleRecordStatus)
	sales.PATCH("/records/:id/gate-response", s.UpdateSaleRecordGateResponse)
	sales.PATCH("/records/:id/exit-time", s.UpdateSaleRecordExitTime)
	sales.POST("/pretransactions", s.GeneratePreTransactions)

	// -------- Parking sessions --------
	parking := v1.Group("/parking")
	parking.POST("/sessions", s.StartParkingSession)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
