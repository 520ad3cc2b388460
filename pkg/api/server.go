// Package api exposes the analysis gateway over HTTP: the analyze endpoint,
// policy and shield management, trace review, and aggregate statistics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hipocap/gateway/pkg/database"
	"github.com/hipocap/gateway/pkg/pipeline"
	"github.com/hipocap/gateway/pkg/services"
	"github.com/hipocap/gateway/pkg/shield"
)

// Server wires the HTTP routes to the domain services and the analysis engine.
type Server struct {
	db        *database.Client
	policies  *services.PolicyService
	traces    *services.TraceService
	shields   *services.ShieldService
	engine    *pipeline.Engine
	evaluator *shield.Evaluator

	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates the API server and registers all routes.
func NewServer(
	db *database.Client,
	policies *services.PolicyService,
	traces *services.TraceService,
	shields *services.ShieldService,
	engine *pipeline.Engine,
	evaluator *shield.Evaluator,
) *Server {
	s := &Server{
		db:        db,
		policies:  policies,
		traces:    traces,
		shields:   shields,
		engine:    engine,
		evaluator: evaluator,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the underlying gin engine. Used by tests to drive requests
// without a listening socket.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(securityHeaders())

	router.GET("/health", s.healthHandler)

	v1 := router.Group("/api/v1")
	v1.Use(ownerAuth())
	{
		v1.POST("/analyze", s.analyzeHandler)

		v1.POST("/policies", s.createPolicyHandler)
		v1.GET("/policies", s.listPoliciesHandler)
		v1.GET("/policies/:policy_key", s.getPolicyHandler)
		v1.PATCH("/policies/:policy_key", s.updatePolicyHandler)
		v1.DELETE("/policies/:policy_key", s.deletePolicyHandler)

		v1.GET("/traces", s.listTracesHandler)
		v1.GET("/traces/:id", s.getTraceHandler)
		v1.POST("/traces/:id/review", s.reviewTraceHandler)

		v1.GET("/stats/decisions", s.decisionStatsHandler)
		v1.GET("/stats/functions", s.functionStatsHandler)
		v1.GET("/stats/timeline", s.timelineStatsHandler)

		v1.POST("/shields", s.createShieldHandler)
		v1.GET("/shields", s.listShieldsHandler)
		v1.GET("/shields/:shield_key", s.getShieldHandler)
		v1.PATCH("/shields/:shield_key", s.updateShieldHandler)
		v1.DELETE("/shields/:shield_key", s.deleteShieldHandler)
		v1.POST("/shields/:shield_key/evaluate", s.evaluateShieldHandler)
	}

	return router
}

// Start runs the HTTP server on addr. Blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"
)

// healthHandler handles GET /health. Only the gateway's own database is
// checked; the classifier and LLM endpoints are external dependencies and
// must not flap the gateway's liveness.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbHealth, err := s.db.Health(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   healthStatusUnhealthy,
			"database": dbHealth,
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   healthStatusHealthy,
		"database": dbHealth,
	})
}
