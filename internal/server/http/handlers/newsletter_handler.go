package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/server/http/dto"
)

// NewsletterHandler manages newsletter sign-ups.
type NewsletterHandler struct {
	facade NewsletterFacade
}

// NewNewsletterHandler constructs NewsletterHandler.
func NewNewsletterHandler(facade NewsletterFacade) *NewsletterHandler {
	return &NewsletterHandler{facade: facade}
}

// Subscribe handles POST /api/newsletter. Repeated sign-ups succeed with created=false.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.facade.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewsletterResponse{Subscribed: true, Created: created})
}

// List handles GET /api/admin/subscribers.
func (h *NewsletterHandler) List(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	subscribers, err := h.facade.Subscribers(c.Request.Context(), grant)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.SubscriberResponse, 0, len(subscribers))
	for _, s := range subscribers {
		response = append(response, dto.SubscriberResponse{Email: s.Email, CreatedAt: s.CreatedAt})
	}
	c.JSON(http.StatusOK, response)
}
