package handlers

import "github.com/gin-gonic/gin"

func (h *Handler) GetBlockNumber(c *gin.Context) {
	n, err := h.chain.CurrentBlockNumber(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"blockNumber": n})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	hash, ok := h.pathParam(c, "hash", "required,txhash")
	if !ok {
		return
	}

	receipt, err := h.chain.GetTransactionReceipt(c.Request.Context(), hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, receipt)
}
