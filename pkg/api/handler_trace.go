package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hipocap/gateway/pkg/models"
)

// listTracesHandler handles GET /api/v1/traces with filter query params.
func (s *Server) listTracesHandler(c *gin.Context) {
	var filter models.TraceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}
	rows, total, err := s.traces.List(c.Request.Context(), ownerID(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"traces": rows,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// getTraceHandler handles GET /api/v1/traces/:id.
func (s *Server) getTraceHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}
	row, err := s.traces.Get(c.Request.Context(), ownerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// reviewTraceHandler handles POST /api/v1/traces/:id/review.
func (s *Server) reviewTraceHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBindError(c, err)
		return
	}
	var req models.ReviewTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := s.traces.Review(c.Request.Context(), ownerID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// statsWindow reads the shared "since" query param, defaulting to the last
// 24 hours.
func statsWindow(c *gin.Context) (time.Time, bool) {
	raw := c.Query("since")
	if raw == "" {
		return time.Now().Add(-24 * time.Hour), true
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondBindError(c, err)
		return time.Time{}, false
	}
	return since, true
}

// decisionStatsHandler handles GET /api/v1/stats/decisions.
func (s *Server) decisionStatsHandler(c *gin.Context) {
	since, ok := statsWindow(c)
	if !ok {
		return
	}
	counts, err := s.traces.CountsByDecision(c.Request.Context(), ownerID(c), since)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"since": since, "decisions": counts})
}

// functionStatsHandler handles GET /api/v1/stats/functions.
func (s *Server) functionStatsHandler(c *gin.Context) {
	since, ok := statsWindow(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	counts, err := s.traces.CountsByFunction(c.Request.Context(), ownerID(c), since, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"since": since, "functions": counts})
}

// timelineStatsHandler handles GET /api/v1/stats/timeline.
func (s *Server) timelineStatsHandler(c *gin.Context) {
	since, ok := statsWindow(c)
	if !ok {
		return
	}
	interval := c.DefaultQuery("interval", "hour")
	buckets, err := s.traces.TimeSeries(c.Request.Context(), ownerID(c), interval, since)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"since": since, "interval": interval, "buckets": buckets})
}
