package server

import (
	"net/http"
	"strings"

	"resuscan/internal/observability"
)

// setupRoutes registers every endpoint. /api routes pass through rate
// limiting, authentication and the request size limit.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	api := func(pattern, route string, h http.HandlerFunc) {
		mux.HandleFunc(pattern,
			s.rateLimitMiddleware(
				s.authMiddleware(
					s.requestSizeLimitMiddleware(
						observability.HandlerSpan(s.om, route, h)))))
	}

	api("POST /api/ats-score", "api.ats_score", s.handleATSScore)
	api("POST /api/skill-gap", "api.skill_gap", s.handleSkillGap)
	api("POST /api/tips", "api.tips", s.handleTips)
	api("POST /api/recommendations", "api.recommendations", s.handleRecommendations)
	api("POST /api/extract", "api.extract", s.handleExtract)
	api("POST /api/analyze", "api.analyze", s.handleAnalyze)
	api("POST /api/bullets/improve", "api.bullets_improve", s.handleImproveBullets)
	api("GET /api/templates", "api.templates", s.handleTemplates)
	api("POST /api/render", "api.render", s.handleRender)
	api("POST /api/versions", "api.versions_save", s.handleSaveVersion)
	api("GET /api/versions", "api.versions_list", s.handleListVersions)
	api("GET /api/versions/{id}", "api.versions_get", s.handleGetVersion)
	api("DELETE /api/versions/{id}", "api.versions_delete", s.handleDeleteVersion)
	api("POST /api/versions/render", "api.versions_render", s.handleSaveAndRender)

	return mux
}

// authEnabled is false when neither API keys nor a JWT secret are configured.
func (s *Server) authEnabled() bool {
	return len(s.APIKeys) > 0 || len(s.JWTSecret) > 0
}

// requestCredential returns the X-API-Key header or the bearer token.
func requestCredential(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// authMiddleware accepts a configured API key, or a bearer JWT signed with
// the configured secret.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	if !s.authEnabled() {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		credential := requestCredential(r)
		if credential == "" {
			s.Logger.Info("Authentication failed: missing credentials",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if s.APIKeys[credential] {
			s.Logger.Debug("API key authentication successful",
				"endpoint", r.URL.Path,
				"api_key_prefix", maskAPIKey(credential))
			next(w, r)
			return
		}

		if len(s.JWTSecret) > 0 {
			claims, err := validateToken(credential, s.JWTSecret, s.JWTIssuer)
			if err == nil {
				s.Logger.Debug("Token authentication successful",
					"endpoint", r.URL.Path,
					"subject", claims.Subject)
				next(w, r)
				return
			}
			s.Logger.Info("Authentication failed: invalid token",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"error", err.Error())
		} else {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(credential))
		}

		writeErrorResponse(w, "Invalid credentials", "Unauthorized access", http.StatusUnauthorized)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	if s.MaxRequestSize <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
		next(w, r)
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
