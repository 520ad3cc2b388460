package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/services"
)

// analyzeEnvelope is the analyze response plus gateway bookkeeping.
type analyzeEnvelope struct {
	*models.AnalyzeResponse
	PolicyKey string `json:"policy_key"`
	TraceID   int    `json:"trace_id,omitempty"`
}

// analyzeHandler handles POST /api/v1/analyze. The verdict is computed under
// the caller's policy and recorded as a trace; a trace write failure never
// withholds an already-computed verdict.
func (s *Server) analyzeHandler(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	owner := ownerID(c)

	doc, policyKey, err := s.policies.Document(c.Request.Context(), owner, req.PolicyKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := s.engine.Analyze(c.Request.Context(), doc, &req)

	envelope := analyzeEnvelope{AnalyzeResponse: resp, PolicyKey: policyKey}
	trace, err := s.traces.Record(c.Request.Context(), services.RecordTraceInput{
		UserID:    owner,
		APIKeyID:  apiKeyID(c),
		PolicyKey: policyKey,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Request:   &req,
		Response:  resp,
	})
	if err != nil {
		slog.Error("Failed to record analysis trace",
			"owner_id", owner,
			"function", req.FunctionName,
			"error", err)
	} else {
		envelope.TraceID = trace.ID
	}

	c.JSON(http.StatusOK, envelope)
}
