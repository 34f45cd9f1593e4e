package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
)

// ValidateIdea always succeeds; an unusable model reply yields the fallback scores.
func (h *Handler) ValidateIdea(c *gin.Context) {
	var req models.ValidateIdeaRequest
	if !h.bind(c, &req) {
		return
	}
	h.ok(c, h.ai.ValidateIdea(c.Request.Context(), req.Title, req.Description, req.Category, req.Content))
}

func (h *Handler) AnalyzeContent(c *gin.Context) {
	var req models.AnalyzeContentRequest
	if !h.bind(c, &req) {
		return
	}

	analysis, err := h.ai.AnalyzeContent(c.Request.Context(), req.Content, req.ContentType)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, analysis)
}

func (h *Handler) GenerateMetadata(c *gin.Context) {
	var req models.GenerateMetadataRequest
	if !h.bind(c, &req) {
		return
	}

	metadata, err := h.ai.GenerateMetadata(c.Request.Context(), req.Title, req.Description, req.Category, *req.AIScore)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, metadata)
}

func (h *Handler) AIHealth(c *gin.Context) {
	h.ok(c, gin.H{"status": "healthy", "timestamp": time.Now().UTC().Format(isoMillis)})
}
