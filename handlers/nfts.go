package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
)

func (h *Handler) GetIPNFT(c *gin.Context) {
	tokenID, ok := h.uintParam(c, "tokenId")
	if !ok {
		return
	}

	nft, err := h.chain.GetIPNFTData(c.Request.Context(), tokenID)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, nft)
}

func (h *Handler) GetCreatorTokens(c *gin.Context) {
	address, ok := h.pathParam(c, "address", "required,ethaddr")
	if !ok {
		return
	}

	ids, err := h.chain.GetCreatorTokens(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, ids)
}

// LicenseIP pays price ether to license the token.
func (h *Handler) LicenseIP(c *gin.Context) {
	var req models.LicenseIPRequest
	if !h.bind(c, &req) {
		return
	}

	txHash, err := h.chain.LicenseIP(c.Request.Context(), *req.TokenID, req.Price)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"tokenId": *req.TokenID, "price": req.Price, "txHash": txHash})
}
