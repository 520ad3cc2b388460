package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/services"
)

// createShieldHandler handles POST /api/v1/shields.
func (s *Server) createShieldHandler(c *gin.Context) {
	var req models.CreateShieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := s.shields.Create(c.Request.Context(), ownerID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// listShieldsHandler handles GET /api/v1/shields.
func (s *Server) listShieldsHandler(c *gin.Context) {
	rows, err := s.shields.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shields": rows})
}

// getShieldHandler handles GET /api/v1/shields/:shield_key.
func (s *Server) getShieldHandler(c *gin.Context) {
	row, err := s.shields.GetByKey(c.Request.Context(), ownerID(c), c.Param("shield_key"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// updateShieldHandler handles PATCH /api/v1/shields/:shield_key.
func (s *Server) updateShieldHandler(c *gin.Context) {
	var req models.UpdateShieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := s.shields.Update(c.Request.Context(), ownerID(c), c.Param("shield_key"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// deleteShieldHandler handles DELETE /api/v1/shields/:shield_key.
func (s *Server) deleteShieldHandler(c *gin.Context) {
	if err := s.shields.Delete(c.Request.Context(), ownerID(c), c.Param("shield_key")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// evaluateShieldHandler handles POST /api/v1/shields/:shield_key/evaluate.
// Runs the caller's content through the shield's analyst prompt for a
// one-shot verdict.
func (s *Server) evaluateShieldHandler(c *gin.Context) {
	var req models.ShieldEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	row, err := s.shields.GetByKey(c.Request.Context(), ownerID(c), c.Param("shield_key"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !row.IsActive {
		respondServiceError(c, fmt.Errorf("%w: shield %q is not active", services.ErrInvalidInput, row.ShieldKey))
		return
	}

	result, err := s.evaluator.Evaluate(c.Request.Context(), services.Domain(row), req.Content, req.UserQuery, req.RequireReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
