package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	snapshotdomain "github.com/renolab/bathquote/internal/snapshot/domain"
)

// CreateSnapshot prices both halves of a quote and persists the result.
// Replays of the same request under the same configuration return the
// existing snapshot.
//
// POST /v1/snapshots
func (s *Server) CreateSnapshot(c *gin.Context) {
	var req snapshotdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, quotedomain.ErrInvalidForm)
		return
	}

	result, err := s.snapshotSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetSnapshot returns a stored snapshot by id.
//
// GET /v1/snapshots/:id
func (s *Server) GetSnapshot(c *gin.Context) {
	snapshot, err := s.snapshotSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

type transitionRequest struct {
	Status snapshotdomain.Status `json:"status" binding:"required"`
}

// TransitionSnapshot advances a snapshot's lifecycle status. The priced
// numbers are immutable; only the status column changes.
//
// PATCH /v1/snapshots/:id/status
func (s *Server) TransitionSnapshot(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, quotedomain.ErrInvalidForm)
		return
	}

	snapshot, err := s.snapshotSvc.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
