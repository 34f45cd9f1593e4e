package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
)

func (h *Handler) UploadFile(c *gin.Context) {
	var req models.UploadFileRequest
	if !h.bind(c, &req) {
		return
	}
	file, err := h.decodeFile(req.Filename, req.ContentType, req.Content)
	if err != nil {
		h.abort(c, err)
		return
	}

	result, err := h.storage.UploadFile(c.Request.Context(), file)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, result)
}

func (h *Handler) UploadJSON(c *gin.Context) {
	var req models.UploadJSONRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.storage.UploadJSON(c.Request.Context(), req.Metadata)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, result)
}

// Pin, unpin and the checks below are best effort: provider failures come back as false.

func (h *Handler) PinHash(c *gin.Context) {
	var req models.HashRequest
	if !h.bind(c, &req) {
		return
	}
	h.ok(c, gin.H{"hash": req.Hash, "pinned": h.storage.PinHash(c.Request.Context(), req.Hash)})
}

func (h *Handler) UnpinHash(c *gin.Context) {
	var req models.HashRequest
	if !h.bind(c, &req) {
		return
	}
	h.ok(c, gin.H{"hash": req.Hash, "unpinned": h.storage.UnpinHash(c.Request.Context(), req.Hash)})
}

func (h *Handler) VerifyHash(c *gin.Context) {
	hash, ok := h.pathParam(c, "hash", "required,cid")
	if !ok {
		return
	}
	h.ok(c, gin.H{"hash": hash, "exists": h.storage.VerifyHash(c.Request.Context(), hash)})
}

func (h *Handler) IsPinned(c *gin.Context) {
	hash, ok := h.pathParam(c, "hash", "required,cid")
	if !ok {
		return
	}
	h.ok(c, gin.H{"hash": hash, "pinned": h.storage.IsPinned(c.Request.Context(), hash)})
}

func (h *Handler) GetFileInfo(c *gin.Context) {
	hash, ok := h.pathParam(c, "hash", "required,cid")
	if !ok {
		return
	}

	info, err := h.storage.GetFileInfo(c.Request.Context(), hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, info)
}
