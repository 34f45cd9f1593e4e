package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
)

func (h *Handler) GetEarnings(c *gin.Context) {
	address, ok := h.pathParam(c, "address", "required,ethaddr")
	if !ok {
		return
	}

	earnings, err := h.chain.GetCreatorEarnings(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"address": address, "earnings": earnings})
}

// GetBalance returns the FORGE token balance of address.
func (h *Handler) GetBalance(c *gin.Context) {
	address, ok := h.pathParam(c, "address", "required,ethaddr")
	if !ok {
		return
	}

	balance, err := h.chain.GetForgeTokenBalance(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"address": address, "balance": balance})
}

func (h *Handler) ClaimEarnings(c *gin.Context) {
	var req models.ClaimEarningsRequest
	if !h.bind(c, &req) {
		return
	}

	txHash, err := h.chain.ClaimCreatorEarnings(c.Request.Context(), req.Amount)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"amount": req.Amount, "txHash": txHash})
}
