package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/middleware"
)

// RouterOptions carries the stateful middleware owned by main. Nil fields are skipped.
type RouterOptions struct {
	Limiter *middleware.RateLimiter
	Metrics *middleware.Metrics
}

// NewRouter builds the gin engine with every route and the shared middleware stack.
func NewRouter(h *Handler, opts RouterOptions) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	// ClientIP keys the rate limiter, so forwarding headers count only from known proxies
	if err := router.SetTrustedProxies(h.cfg.TrustedProxies); err != nil {
		return nil, err
	}
	router.Use(
		middleware.RequestID(),
		middleware.Logger(h.log.WithField("component", "http")),
		middleware.Recovery(h.clock, h.log),
	)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(
		middleware.SecurityHeaders(),
		middleware.CORS(h.cfg.AllowedOrigins),
		middleware.ErrorHandler(h.clock, h.cfg.IsProduction(), h.log),
	)
	router.NoRoute(middleware.NotFound(h.clock))

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	if opts.Limiter != nil {
		api.Use(opts.Limiter.Middleware())
	}

	// Writes under these groups need a session token when AUTH_REQUIRED is set
	var guard []gin.HandlerFunc
	if h.cfg.AuthRequired {
		guard = append(guard, middleware.RequireAuthForWrites(h.auth))
	}

	auth := api.Group("/auth")
	{
		auth.POST("/wallet", h.WalletAuth)
		auth.GET("/verify", h.VerifyAuth)
	}

	ideas := api.Group("/ideas", guard...)
	{
		ideas.POST("/submit", h.SubmitIdea)
		ideas.POST("/approve", h.ApproveIdea)
		ideas.POST("/mint-ipnft", h.MintIPNFT)
		ideas.GET("/:ideaId", h.GetIdea)
		ideas.GET("/user/:address", h.GetUserIdeas)
	}

	nfts := api.Group("/nfts", guard...)
	{
		nfts.GET("/:tokenId", h.GetIPNFT)
		nfts.GET("/creator/:address", h.GetCreatorTokens)
		nfts.POST("/license", h.LicenseIP)
	}

	dao := api.Group("/dao", guard...)
	{
		dao.POST("/proposals", h.CreateProposal)
		dao.GET("/proposals/:proposalId/state", h.GetProposalState)
		dao.POST("/vote", h.Vote)
		dao.GET("/voting-power/:address", h.GetVotingPower)
	}

	payments := api.Group("/payments", guard...)
	{
		payments.GET("/earnings/:address", h.GetEarnings)
		payments.GET("/balance/:address", h.GetBalance)
		payments.POST("/claim-earnings", h.ClaimEarnings)
	}

	chain := api.Group("/chain")
	{
		chain.GET("/block-number", h.GetBlockNumber)
		chain.GET("/tx/:hash", h.GetTransaction)
	}

	ai := api.Group("/ai")
	{
		ai.POST("/validate-idea", h.ValidateIdea)
		ai.POST("/analyze-content", h.AnalyzeContent)
		ai.POST("/generate-metadata", h.GenerateMetadata)
		ai.GET("/health", h.AIHealth)
	}

	ipfs := api.Group("/ipfs")
	{
		ipfs.POST("/upload-file", h.UploadFile)
		ipfs.POST("/upload-json", h.UploadJSON)
		ipfs.POST("/pin", h.PinHash)
		ipfs.POST("/unpin", h.UnpinHash)
		ipfs.GET("/verify/:hash", h.VerifyHash)
		ipfs.GET("/pinned/:hash", h.IsPinned)
		ipfs.GET("/info/:hash", h.GetFileInfo)
	}

	api.GET("/platform/settings", h.PlatformSettings)

	return router, nil
}
