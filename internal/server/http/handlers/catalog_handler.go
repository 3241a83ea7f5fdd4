package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/server/http/dto"
)

// CatalogHandler serves the public beat catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/beats with optional q and genre filters.
func (h *CatalogHandler) List(c *gin.Context) {
	beats, err := h.facade.Browse(c.Request.Context(), c.Query("q"), c.Query("genre"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBeatResponses(beats))
}

// Featured handles GET /api/beats/featured.
func (h *CatalogHandler) Featured(c *gin.Context) {
	beats, err := h.facade.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBeatResponses(beats))
}

// Genres handles GET /api/beats/genres.
func (h *CatalogHandler) Genres(c *gin.Context) {
	genres, err := h.facade.Genres(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

// Get handles GET /api/beats/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	beat, err := h.facade.Beat(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBeatResponse(*beat))
}

// Quote handles POST /api/cart/quote. The cart itself lives on the client.
func (h *CatalogHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := h.facade.Quote(c.Request.Context(), toCartLines(req.Items))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(cart))
}
