package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/middleware"
	"github.com/ideaforge/backend/models"
	"github.com/sirupsen/logrus"
)

// WalletAuth exchanges a personal_sign signature for a session token.
func (h *Handler) WalletAuth(c *gin.Context) {
	var req models.WalletAuthRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.auth.VerifySignature(req.Address, req.Message, req.Signature); err != nil {
		h.abort(c, models.UnauthorizedError(err))
		return
	}

	token, err := h.auth.IssueToken(req.Address)
	if err != nil {
		h.abort(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{"address": req.Address}).Info("Wallet authenticated")
	h.ok(c, models.AuthResponse{
		Token: token,
		User:  models.AuthUser{Address: req.Address, Authenticated: true},
	})
}

func (h *Handler) VerifyAuth(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		h.abort(c, models.UnauthorizedError(errors.New("missing bearer token")))
		return
	}

	address, err := h.auth.VerifyToken(token)
	if err != nil {
		h.abort(c, models.UnauthorizedError(err))
		return
	}
	h.ok(c, models.VerifyResponse{Valid: true, User: models.AuthUser{Address: address}})
}
