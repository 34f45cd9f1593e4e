package handlers

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ideaforge/backend/config"
	"github.com/ideaforge/backend/models"
	"github.com/ideaforge/backend/services"
	"github.com/sirupsen/logrus"
)

// isoMillis renders timestamps like JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type Handler struct {
	chain   services.ChainService
	storage services.StorageService
	ai      services.InferenceService
	auth    services.AuthService

	cfg   *config.Config
	clock *models.Clock
	log   *logrus.Entry
}

func NewHandler(
	chain services.ChainService,
	storage services.StorageService,
	ai services.InferenceService,
	auth services.AuthService,
	cfg *config.Config,
	clock *models.Clock,
	log *logrus.Entry,
) *Handler {
	return &Handler{
		chain:   chain,
		storage: storage,
		ai:      ai,
		auth:    auth,
		cfg:     cfg,
		clock:   clock,
		log:     log,
	}
}

func (h *Handler) ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, h.clock.Success(data))
}

// abort records err for the error middleware and stops the chain.
func (h *Handler) abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.abort(c, models.ValidationError(err))
		return false
	}
	return true
}

// pathParam validates a path parameter against validator tags.
func (h *Handler) pathParam(c *gin.Context, name, tag string) (string, bool) {
	value := c.Param(name)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		h.abort(c, errors.New("validator engine unavailable"))
		return "", false
	}
	if err := v.Var(value, tag); err != nil {
		h.abort(c, models.ValidationError(errors.New(name+": "+err.Error())))
		return "", false
	}
	return value, true
}

func (h *Handler) uintParam(c *gin.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		h.abort(c, models.ValidationError(errors.New(name+" must be a non-negative integer")))
		return 0, false
	}
	return n, true
}

func (h *Handler) bigParam(c *gin.Context, name string) (*big.Int, bool) {
	n, ok := new(big.Int).SetString(c.Param(name), 10)
	if !ok || n.Sign() < 0 {
		h.abort(c, models.ValidationError(errors.New(name+" must be a non-negative integer")))
		return nil, false
	}
	return n, true
}

// idValue keeps identifiers numeric in JSON unless they overflow uint64.
func idValue(id *big.Int) any {
	if id == nil {
		return uint64(0)
	}
	if id.IsUint64() {
		return id.Uint64()
	}
	return id.String()
}
