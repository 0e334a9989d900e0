package server

import "fmt"

func (s *Server) displayServerInfo() {
	scheme := "http"
	if s.TLSConfig.Enabled() {
		scheme = "https"
	}
	fmt.Printf("Listening on %s://%s:%s\n", scheme, s.Host, s.Port)
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayLimits()
}

func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health                 - Health check")
	fmt.Println("  GET    /stats                  - Server statistics")
	fmt.Println("  POST   /api/ats-score          - ATS compatibility score")
	fmt.Println("  POST   /api/skill-gap          - Skill gap for a job title")
	fmt.Println("  POST   /api/tips               - Tips from component scores")
	fmt.Println("  POST   /api/recommendations    - Courses and projects for missing skills")
	fmt.Println("  POST   /api/extract            - Extract text from an uploaded resume")
	fmt.Println("  POST   /api/analyze            - Comprehensive analysis of an uploaded resume")
	fmt.Println("  POST   /api/bullets/improve    - Rewrite bullet points")
	fmt.Println("  GET    /api/templates          - Rendering templates")
	fmt.Println("  POST   /api/render             - Render a resume to PDF")
	fmt.Println("  POST   /api/versions           - Save a resume version")
	fmt.Println("  GET    /api/versions           - List resume versions")
	fmt.Println("  GET    /api/versions/{id}      - Get a resume version")
	fmt.Println("  DELETE /api/versions/{id}      - Delete a resume version")
	fmt.Println("  POST   /api/versions/render    - Save a version and render it")
}

func (s *Server) displayAuthInfo() {
	switch {
	case len(s.APIKeys) > 0 && len(s.JWTSecret) > 0:
		fmt.Printf("Authentication: ENABLED (%d API keys, JWT bearer tokens)\n", len(s.APIKeys))
	case len(s.APIKeys) > 0:
		fmt.Printf("Authentication: ENABLED (%d API keys)\n", len(s.APIKeys))
	case len(s.JWTSecret) > 0:
		fmt.Println("Authentication: ENABLED (JWT bearer tokens)")
	default:
		fmt.Println("Authentication: DISABLED")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

func (s *Server) displayLimits() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
	}
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
	} else {
		fmt.Println("Rate limiting: DISABLED")
	}
}
