package server

import (
	"context"
	"net/http"
	"time"

	"resuscan/internal/render"
)

const defaultHealthCheckTimeout = 10 * time.Second

func (s *Server) healthCheckTimeout() time.Duration {
	if s.AppConfig != nil && s.AppConfig.Observability.HealthCheck.Timeout > 0 {
		return s.AppConfig.Observability.HealthCheck.Timeout
	}
	return defaultHealthCheckTimeout
}

// healthHandler reports component availability. The service is degraded
// when a configured model cannot be reached.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.healthCheckTimeout())
	defer cancel()

	healthy := true
	models := make(map[string]any, len(s.deps.Models))
	for _, m := range s.deps.Models {
		info := m.GetModelInfo(ctx)
		models[m.Operation()] = info
		if info == nil || !info.Available {
			healthy = false
		}
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resuscan",
		"version": s.Version,
		"components": map[string]any{
			"catalog":    true,
			"extraction": s.deps.Analyzer.CanExtract(),
			"rewriting":  s.deps.Analyzer.CanRewrite(),
			"rendering":  s.deps.Renderer != nil,
			"versions":   s.deps.Store != nil,
		},
		"ai_models": models,
	}

	status := http.StatusOK
	if !healthy {
		response["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

// statsHandler reports limiter, breaker and catalog state.
func (s *Server) statsHandler(w http.ResponseWriter, _ *http.Request) {
	cat := s.deps.Analyzer.Engine().Catalog()

	response := map[string]any{
		"service": "resuscan",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"auth_enabled":           s.authEnabled(),
		},
		"catalog": map[string]any{
			"job_titles":     len(cat.JobTitles()),
			"job_categories": len(cat.JobCategories()),
			"vocabulary":     len(cat.Vocabulary()),
			"resources":      len(cat.Resources()),
		},
		"templates": len(render.List()),
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if len(s.deps.Models) > 0 {
		breakers := make(map[string]any, len(s.deps.Models))
		for _, m := range s.deps.Models {
			breakers[m.Operation()] = m.Stats()
		}
		response["circuit_breakers"] = breakers
	}

	writeJSON(w, http.StatusOK, response)
}
