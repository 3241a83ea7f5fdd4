package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/server/http/dto"
)

// StatsHandler serves admin and personal dashboards.
type StatsHandler struct {
	facade StatsFacade
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(facade StatsFacade) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// Dashboard handles GET /api/admin/stats.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	grant, ok := adminGrant(c)
	if !ok {
		return
	}

	stats, err := h.facade.Dashboard(c.Request.Context(), grant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(stats))
}

// Summary handles GET /api/me/summary. Callers who take part in collaborations also get the artist block.
func (h *StatsHandler) Summary(c *gin.Context) {
	p := CurrentPrincipal(c)
	ctx := c.Request.Context()

	customer, err := h.facade.CustomerSummary(ctx, p)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.SummaryResponse{
		Customer: dto.CustomerSummaryResponse{
			TotalOrders:    customer.TotalOrders,
			TotalSpent:     customer.TotalSpent.Float(),
			TotalDownloads: customer.TotalDownloads,
		},
	}

	if p.Has(access.PermViewOwnCollaborations) {
		artist, err := h.facade.ArtistSummary(ctx, p)
		if err != nil {
			respondError(c, err)
			return
		}
		response.Artist = &dto.ArtistSummaryResponse{
			ActiveCollaborations:    artist.ActiveCollaborations,
			CompletedCollaborations: artist.CompletedCollaborations,
			BeatsPurchased:          artist.BeatsPurchased,
			TotalSpent:              artist.TotalSpent.Float(),
		}
	}

	c.JSON(http.StatusOK, response)
}
