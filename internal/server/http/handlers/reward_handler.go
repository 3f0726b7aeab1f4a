package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/server/http/dto"
)

// RewardHandler serves reward tiers and progression.
type RewardHandler struct {
	facade RewardFacade
}

// NewRewardHandler creates RewardHandler instance.
func NewRewardHandler(facade RewardFacade) *RewardHandler {
	return &RewardHandler{facade: facade}
}

// Tiers handles GET /api/rewards.
func (h *RewardHandler) Tiers(c *gin.Context) {
	tiers, err := h.facade.RewardTiers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRewardTierResponses(tiers))
}

// Progress handles GET /api/rewards/progress.
func (h *RewardHandler) Progress(c *gin.Context) {
	progress, err := h.facade.RewardProgress(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProgressResponse(*progress))
}
