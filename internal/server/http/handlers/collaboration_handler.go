package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/server/http/dto"
)

// CollaborationHandler exposes the collaboration ledger to admins.
type CollaborationHandler struct {
	facade CollaborationFacade
}

// NewCollaborationHandler constructs CollaborationHandler.
func NewCollaborationHandler(facade CollaborationFacade) *CollaborationHandler {
	return &CollaborationHandler{facade: facade}
}

// Create handles POST /api/admin/collaborations.
func (h *CollaborationHandler) Create(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	var req dto.CollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	collab, err := h.facade.CreateCollaboration(c.Request.Context(), grant, toCollaborationDraft(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCollaborationResponse(*collab))
}

// List handles GET /api/admin/collaborations with optional status, type, active and limit filters.
func (h *CollaborationHandler) List(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	filter, err := collaborationFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	collabs, err := h.facade.Collaborations(c.Request.Context(), grant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationResponses(collabs))
}

// Get handles GET /api/admin/collaborations/:id.
func (h *CollaborationHandler) Get(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	collab, err := h.facade.Collaboration(c.Request.Context(), grant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationResponse(*collab))
}

// Update handles PATCH /api/admin/collaborations/:id.
func (h *CollaborationHandler) Update(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	var req dto.CollaborationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	collab, err := h.facade.UpdateCollaboration(c.Request.Context(), grant, c.Param("id"), toCollaborationPatch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationResponse(*collab))
}

// UpdateStatus handles PATCH /api/admin/collaborations/:id/status.
func (h *CollaborationHandler) UpdateStatus(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, err := model.ParseCollaborationStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	collab, err := h.facade.UpdateCollaborationStatus(c.Request.Context(), grant, c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationResponse(*collab))
}

// RecordPayment handles PATCH /api/admin/collaborations/:id/payment.
func (h *CollaborationHandler) RecordPayment(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	paid := model.MoneyFromFloat(*req.PaidAmount)
	collab, err := h.facade.RecordCollaborationPayment(c.Request.Context(), grant, c.Param("id"), paid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationResponse(*collab))
}

// Delete handles DELETE /api/admin/collaborations/:id.
func (h *CollaborationHandler) Delete(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	if err := h.facade.DeleteCollaboration(c.Request.Context(), grant, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/admin/collaborations/stats.
func (h *CollaborationHandler) Stats(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	stats, err := h.facade.CollaborationStats(c.Request.Context(), grant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationStatsResponse(stats))
}

// Stream handles GET /api/admin/collaborations/stream. Every change to the
// matching collaborations is pushed as a server-sent "collaborations" event.
func (h *CollaborationHandler) Stream(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	filter, err := collaborationFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.facade.WatchCollaborations(c.Request.Context(), grant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	defer sub.Cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case snapshot, ok := <-sub.Updates():
			if !ok {
				return false
			}
			c.SSEvent("collaborations", toCollaborationResponses(snapshot))
			return true
		}
	})
}

// Mine handles GET /api/me/collaborations.
func (h *CollaborationHandler) Mine(c *gin.Context) {
	collabs, err := h.facade.MyCollaborations(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollaborationResponses(collabs))
}

func collaborationFilter(c *gin.Context) (model.CollaborationFilter, error) {
	var filter model.CollaborationFilter
	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseCollaborationStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	if raw := c.Query("type"); raw != "" {
		t, err := model.ParseCollaborationType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = t
	}
	if c.Query("active") == "true" {
		filter.Statuses = model.ActiveCollaborationStatuses
	}
	filter.Limit = queryLimit(c, "limit", 0)
	return filter, nil
}
