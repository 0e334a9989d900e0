package server

import (
	"context"
	"time"

	"resuscan/internal/ai"
	"resuscan/internal/analysis"
	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/observability"
	"resuscan/internal/render"
	"resuscan/internal/store"
	"resuscan/internal/types"
)

// ResumeTextRequest is the body of the ATS score and skill gap endpoints.
type ResumeTextRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JobTitle   string `json:"job_title" validate:"required,max=200"`
}

// TipsRequest carries the four component scores.
type TipsRequest struct {
	KeywordScore     float64 `json:"keyword_score" validate:"gte=0,lte=100"`
	FormatScore      float64 `json:"format_score" validate:"gte=0,lte=100"`
	ReadabilityScore float64 `json:"readability_score" validate:"gte=0,lte=100"`
	StructureScore   float64 `json:"structure_score" validate:"gte=0,lte=100"`
}

// RecommendRequest asks for learning resources for missing skills.
type RecommendRequest struct {
	MissingSkills []string `json:"missing_skills" validate:"required,dive,required"`
	JobTitle      string   `json:"job_title" validate:"max=200"`
}

// ImproveRequest lists bullets to rewrite for a job title.
type ImproveRequest struct {
	BulletPoints []string `json:"bullet_points" validate:"required,min=1,max=10,dive,required"`
	JobTitle     string   `json:"job_title" validate:"required,max=200"`
}

// RenderRequest renders a structured resume with a template.
type RenderRequest struct {
	Resume   types.Resume `json:"resume_data"`
	Template string       `json:"template"`
}

// SaveVersionRequest stores a named resume version. Template is only read
// by the save-and-render endpoint.
type SaveVersionRequest struct {
	Name     string       `json:"name" validate:"required,max=200"`
	JobTitle string       `json:"job_title" validate:"max=200"`
	Resume   types.Resume `json:"resume_data"`
	Template string       `json:"template"`
}

// DeleteVersionResponse confirms a deletion.
type DeleteVersionResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ModelChecker reports the state of one generative operation. ai.Service
// satisfies it.
type ModelChecker interface {
	Operation() string
	GetModelInfo(ctx context.Context) *ai.ModelInfo
	Stats() map[string]any
}

// Deps are the collaborators behind the API. Renderer, Store and Models are
// optional; their endpoints answer 503 when missing.
type Deps struct {
	Analyzer *analysis.Analyzer
	Renderer *render.Renderer
	Store    store.Store
	Models   []ModelChecker
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys   map[string]bool
	JWTSecret []byte
	JWTIssuer string

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	deps Deps
	om   *observability.ObservabilityManager

	// Logger
	Logger *errors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	JWT            config.JWTConfig
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// ConfigFrom copies the server section of the application config.
func ConfigFrom(cfg *config.Config, version string) ServerConfig {
	return ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		JWT:            cfg.Server.JWT,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxRequestSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, deps Deps, om *observability.ObservabilityManager, logger *errors.Logger) *Server {
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstCapacity, logger)
	}

	var secret []byte
	if cfg.JWT.Secret != "" {
		secret = []byte(cfg.JWT.Secret)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		JWTSecret:      secret,
		JWTIssuer:      cfg.JWT.Issuer,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		deps:           deps,
		om:             om,
		Logger:         logger,
	}
}
