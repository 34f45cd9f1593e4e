package handlers

import (
	"encoding/base64"
	"fmt"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
	"github.com/sirupsen/logrus"
)

const metadataVersion = "1.0"

// decodeFile checks an attachment against the upload limits.
func (h *Handler) decodeFile(name, contentType, content string) (models.FileUpload, error) {
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return models.FileUpload{}, models.ValidationError(fmt.Errorf("file %q is not valid base64: %w", name, err))
	}
	if int64(len(data)) > h.cfg.MaxFileSize {
		return models.FileUpload{}, models.ValidationError(fmt.Errorf("file %q exceeds %d bytes", name, h.cfg.MaxFileSize))
	}
	if !slices.Contains(h.cfg.AllowedFileTypes, contentType) {
		return models.FileUpload{}, models.ValidationError(fmt.Errorf("file %q has unsupported type %q", name, contentType))
	}
	return models.FileUpload{Data: data, Filename: name, ContentType: contentType}, nil
}

// SubmitIdea pins the attachments and the metadata document, then registers the idea on chain.
func (h *Handler) SubmitIdea(c *gin.Context) {
	var req models.SubmitIdeaRequest
	if !h.bind(c, &req) {
		return
	}

	files := make([]models.FileUpload, 0, len(req.Files))
	for _, f := range req.Files {
		upload, err := h.decodeFile(f.Name, f.Type, f.Content)
		if err != nil {
			h.abort(c, err)
			return
		}
		files = append(files, upload)
	}

	ctx := c.Request.Context()

	contentHash := ""
	if len(files) > 0 {
		results, err := h.storage.UploadMultipleFiles(ctx, files)
		if err != nil {
			h.abort(c, err)
			return
		}
		contentHash = results[0].Hash
	}

	metadata, err := h.storage.UploadJSON(ctx, models.IdeaMetadata{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Content:     req.Content,
		SubmittedAt: time.Now().UTC().Format(isoMillis),
		Version:     metadataVersion,
	})
	if err != nil {
		h.abort(c, err)
		return
	}

	res, err := h.chain.SubmitIdea(ctx, req.Title, req.Description, req.Category, contentHash, metadata.Hash, h.cfg.MinSubmissionFee)
	if err != nil {
		h.abort(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"idea_id": res.ID.String(),
		"tx_hash": res.TxHash,
		"files":   len(files),
	}).Info("Idea submitted")

	h.ok(c, gin.H{
		"ideaId":       idValue(res.ID),
		"txHash":       res.TxHash,
		"contentHash":  contentHash,
		"metadataHash": metadata.Hash,
	})
}

func (h *Handler) ApproveIdea(c *gin.Context) {
	var req models.ApproveIdeaRequest
	if !h.bind(c, &req) {
		return
	}

	txHash, err := h.chain.ApproveIdea(c.Request.Context(), *req.IdeaID, *req.AICredibilityScore, req.ValidationNotes)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{"ideaId": *req.IdeaID, "txHash": txHash})
}

func (h *Handler) MintIPNFT(c *gin.Context) {
	var req models.MintIPNFTRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.chain.MintIPNFT(c.Request.Context(), *req.IdeaID, req.TokenURI, *req.RoyaltyFee)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, gin.H{
		"ideaId":       *req.IdeaID,
		"tokenId":      idValue(res.ID),
		"tokenIdFound": res.IDFound,
		"txHash":       res.TxHash,
	})
}

func (h *Handler) GetIdea(c *gin.Context) {
	ideaID, ok := h.uintParam(c, "ideaId")
	if !ok {
		return
	}

	idea, err := h.chain.GetIdeaSubmission(c.Request.Context(), ideaID)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, idea)
}

func (h *Handler) GetUserIdeas(c *gin.Context) {
	address, ok := h.pathParam(c, "address", "required,ethaddr")
	if !ok {
		return
	}

	ids, err := h.chain.GetUserSubmissions(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.ok(c, ids)
}
