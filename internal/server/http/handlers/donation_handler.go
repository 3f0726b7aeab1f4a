package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/server/http/dto"
)

// DonationHandler exposes ledger endpoints.
type DonationHandler struct {
	facade DonationFacade
}

// NewDonationHandler creates DonationHandler instance.
func NewDonationHandler(facade DonationFacade) *DonationHandler {
	return &DonationHandler{facade: facade}
}

// Record handles POST /api/donations.
func (h *DonationHandler) Record(c *gin.Context) {
	var req dto.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	account, err := h.facade.RecordDonation(c.Request.Context(), CurrentAccountID(c), req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountResponse(*account))
}

// History handles GET /api/donations.
func (h *DonationHandler) History(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	events, err := h.facade.Donations(c.Request.Context(), CurrentAccountID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(events) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.NewDonationResponses(events))
}

// Summary handles GET /api/donations/summary.
func (h *DonationHandler) Summary(c *gin.Context) {
	summary, err := h.facade.DonationSummary(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(*summary))
}

// SetTotal handles PUT /api/admin/accounts/:id/total.
func (h *DonationHandler) SetTotal(c *gin.Context) {
	var req dto.SetTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	if req.Total == nil {
		badRequest(c, "total is required")
		return
	}

	account, err := h.facade.SetTotal(c.Request.Context(), c.Param("id"), *req.Total)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAccountResponse(*account))
}
