package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/config"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	h.ok(c, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(isoMillis),
		"version":     config.Version,
		"environment": h.cfg.NodeEnv,
	})
}

// PlatformSettings exposes the public business parameters the frontend renders.
func (h *Handler) PlatformSettings(c *gin.Context) {
	h.ok(c, gin.H{
		"minSubmissionFee":      h.cfg.MinSubmissionFee,
		"platformFeePercentage": h.cfg.PlatformFeePercentage,
		"aiMinScore":            h.cfg.AIMinScore,
		"aiMaxScore":            h.cfg.AIMaxScore,
		"dao": gin.H{
			"quorumPercentage": h.cfg.DAOQuorumPercentage,
			"votingDelay":      h.cfg.DAOVotingDelay,
			"votingPeriod":     h.cfg.DAOVotingPeriod,
		},
		"upload": gin.H{
			"maxFileSize":      h.cfg.MaxFileSize,
			"allowedFileTypes": h.cfg.AllowedFileTypes,
		},
	})
}
