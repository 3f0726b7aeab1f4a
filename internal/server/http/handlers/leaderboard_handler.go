package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/server/http/dto"
)

// LeaderboardHandler serves ranking endpoints.
type LeaderboardHandler struct {
	facade LeaderboardFacade
}

// NewLeaderboardHandler creates LeaderboardHandler instance.
func NewLeaderboardHandler(facade LeaderboardFacade) *LeaderboardHandler {
	return &LeaderboardHandler{facade: facade}
}

// List handles GET /api/leaderboard.
func (h *LeaderboardHandler) List(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	entries, err := h.facade.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.NewLeaderboardEntryResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /api/leaderboard/me.
func (h *LeaderboardHandler) Me(c *gin.Context) {
	entry, err := h.facade.Standing(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLeaderboardEntryResponse(*entry))
}
