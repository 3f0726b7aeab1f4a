package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/server/http/dto"
)

// AccountHandler serves account profile endpoints.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler creates AccountHandler instance.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Me handles GET /api/me.
func (h *AccountHandler) Me(c *gin.Context) {
	account, err := h.facade.Account(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountResponse(*account))
}

// Referral handles GET /api/referrals/:code.
func (h *AccountHandler) Referral(c *gin.Context) {
	account, err := h.facade.LookupReferral(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(*account))
}
