package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// Version is reported by the health endpoint.
	Version = "1.0.0"

	devJWTSecret = "ideaforge-dev-secret"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

type Config struct {
	// Server
	NodeEnv        string   `envconfig:"NODE_ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"3001"`
	Host           string   `envconfig:"HOST" default:"0.0.0.0"`
	MetricsPort    string   `envconfig:"METRICS_PORT" default:"9090"` // empty disables the listener
	LogLevel       string   `envconfig:"LOG_LEVEL"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"` // unset trusts no forwarding headers

	// Blockchain
	RPCURL              string        `envconfig:"POLYGON_RPC_URL" required:"true"`
	PrivateKey          string        `envconfig:"PRIVATE_KEY" required:"true"`
	ChainID             int64         `envconfig:"CHAIN_ID"` // 0 = ask the node
	TxTimeout           time.Duration `envconfig:"CHAIN_TX_TIMEOUT"`
	ReceiptPollInterval time.Duration `envconfig:"RECEIPT_POLL_INTERVAL" default:"2s"`

	// Contract addresses
	ForgeTokenAddress      string `envconfig:"FORGE_TOKEN_ADDRESS" required:"true"`
	IPNFTAddress           string `envconfig:"IP_NFT_ADDRESS" required:"true"`
	IdeaForgeCoreAddress   string `envconfig:"IDEA_FORGE_CORE_ADDRESS" required:"true"`
	DAOAddress             string `envconfig:"DAO_ADDRESS" required:"true"`
	RevenueSplitterAddress string `envconfig:"REVENUE_SPLITTER_ADDRESS" required:"true"`

	// AI
	OpenAIAPIKey          string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIOrgID           string `envconfig:"OPENAI_ORG_ID"`
	OpenAIBaseURL         string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIValidationModel string `envconfig:"OPENAI_VALIDATION_MODEL" default:"gpt-4"`
	OpenAIAnalysisModel   string `envconfig:"OPENAI_ANALYSIS_MODEL" default:"gpt-3.5-turbo"`

	// IPFS
	PinataAPIKey    string `envconfig:"PINATA_API_KEY" required:"true"`
	PinataSecretKey string `envconfig:"PINATA_SECRET_KEY" required:"true"`
	PinataAPIURL    string `envconfig:"PINATA_API_URL" default:"https://api.pinata.cloud"`
	IPFSGatewayURL  string `envconfig:"IPFS_GATEWAY_URL" default:"https://gateway.pinata.cloud/ipfs/"`

	// Supabase storage, used as an S3-compatible archive of pinned files
	SupabaseS3URL     string `envconfig:"SUPABASE_S3_URL"`
	SupabaseBucket    string `envconfig:"SUPABASE_BUCKET" default:"ipfs-archive"`
	SupabaseAccessKey string `envconfig:"SUPABASE_ACCESS_KEY"`
	SupabaseSecretKey string `envconfig:"SUPABASE_SECRET_KEY"`

	// Payments
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`

	// Authentication
	JWTSecret    string        `envconfig:"JWT_SECRET"`
	JWTExpiresIn time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"`
	AuthRequired bool          `envconfig:"AUTH_REQUIRED" default:"false"`

	// Rate limiting
	RateLimitWindowMS    int `envconfig:"RATE_LIMIT_WINDOW_MS" default:"900000"`
	RateLimitMaxRequests int `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`

	// File upload
	MaxFileSize      int64    `envconfig:"MAX_FILE_SIZE" default:"10485760"`
	AllowedFileTypes []string `envconfig:"ALLOWED_FILE_TYPES" default:"image/jpeg,image/png,image/gif,image/webp,application/pdf,text/plain,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document"`

	// AI validation
	AIMinScore int `envconfig:"AI_MIN_SCORE" default:"50"`
	AIMaxScore int `envconfig:"AI_MAX_SCORE" default:"100"`

	// Platform fees
	PlatformFeePercentage float64 `envconfig:"PLATFORM_FEE_PERCENTAGE" default:"2.5"`
	MinSubmissionFee      string  `envconfig:"MIN_SUBMISSION_FEE" default:"0.001"`

	// DAO
	DAOQuorumPercentage int `envconfig:"DAO_QUORUM_PERCENTAGE" default:"4"`
	DAOVotingDelay      int `envconfig:"DAO_VOTING_DELAY" default:"1"`
	DAOVotingPeriod     int `envconfig:"DAO_VOTING_PERIOD" default:"172800"`

	// Outbound HTTP; zero leaves the client without a deadline
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT"`
}

// Load reads a .env file if one exists, decodes the environment and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.NodeEnv == EnvProduction
}

// RateLimitWindow is the configured window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

// Validate checks values that envconfig cannot. It fills the development JWT secret when allowed.
func (c *Config) Validate() error {
	var errs []error

	addresses := map[string]string{
		"FORGE_TOKEN_ADDRESS":      c.ForgeTokenAddress,
		"IP_NFT_ADDRESS":           c.IPNFTAddress,
		"IDEA_FORGE_CORE_ADDRESS":  c.IdeaForgeCoreAddress,
		"DAO_ADDRESS":              c.DAOAddress,
		"REVENUE_SPLITTER_ADDRESS": c.RevenueSplitterAddress,
	}
	for _, key := range []string{"FORGE_TOKEN_ADDRESS", "IP_NFT_ADDRESS", "IDEA_FORGE_CORE_ADDRESS", "DAO_ADDRESS", "REVENUE_SPLITTER_ADDRESS"} {
		if !addressPattern.MatchString(addresses[key]) {
			errs = append(errs, fmt.Errorf("%s is not a valid address: %q", key, addresses[key]))
		}
	}

	fee, err := decimal.NewFromString(c.MinSubmissionFee)
	if err != nil || fee.IsNegative() {
		errs = append(errs, fmt.Errorf("MIN_SUBMISSION_FEE must be a non-negative decimal: %q", c.MinSubmissionFee))
	}

	if c.AIMinScore < 0 || c.AIMaxScore > 100 || c.AIMinScore > c.AIMaxScore {
		errs = append(errs, fmt.Errorf("AI score bounds must satisfy 0 <= AI_MIN_SCORE <= AI_MAX_SCORE <= 100, got %d..%d", c.AIMinScore, c.AIMaxScore))
	}
	if c.PlatformFeePercentage < 0 || c.PlatformFeePercentage > 100 {
		errs = append(errs, fmt.Errorf("PLATFORM_FEE_PERCENTAGE out of range: %v", c.PlatformFeePercentage))
	}
	if c.RateLimitWindowMS <= 0 || c.RateLimitMaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW_MS and RATE_LIMIT_MAX_REQUESTS must be positive"))
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, errors.New("MAX_FILE_SIZE must be positive"))
	}
	if c.ReceiptPollInterval <= 0 {
		errs = append(errs, errors.New("RECEIPT_POLL_INTERVAL must be positive"))
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		} else {
			c.JWTSecret = devJWTSecret
		}
	}

	// Trailing slash is expected when joining gateway URLs
	if c.IPFSGatewayURL != "" && !strings.HasSuffix(c.IPFSGatewayURL, "/") {
		c.IPFSGatewayURL += "/"
	}

	return errors.Join(errs...)
}

// ArchiveEnabled reports whether Supabase S3 credentials are present.
func (c *Config) ArchiveEnabled() bool {
	return c.SupabaseS3URL != "" && c.SupabaseAccessKey != "" && c.SupabaseSecretKey != ""
}
