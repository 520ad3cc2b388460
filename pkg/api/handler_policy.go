package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hipocap/gateway/pkg/models"
)

// createPolicyHandler handles POST /api/v1/policies.
func (s *Server) createPolicyHandler(c *gin.Context) {
	var req models.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := s.policies.Create(c.Request.Context(), ownerID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// listPoliciesHandler handles GET /api/v1/policies.
func (s *Server) listPoliciesHandler(c *gin.Context) {
	rows, err := s.policies.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"policies": rows})
}

// getPolicyHandler handles GET /api/v1/policies/:policy_key.
func (s *Server) getPolicyHandler(c *gin.Context) {
	row, err := s.policies.GetByKey(c.Request.Context(), ownerID(c), c.Param("policy_key"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// updatePolicyHandler handles PATCH /api/v1/policies/:policy_key. The
// response carries the updated policy plus a per-section change diff.
func (s *Server) updatePolicyHandler(c *gin.Context) {
	var req models.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, diff, err := s.policies.Update(c.Request.Context(), ownerID(c), c.Param("policy_key"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"policy": updated, "changes": diff})
}

// deletePolicyHandler handles DELETE /api/v1/policies/:policy_key.
func (s *Server) deletePolicyHandler(c *gin.Context) {
	if err := s.policies.Delete(c.Request.Context(), ownerID(c), c.Param("policy_key")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
