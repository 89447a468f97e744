// Package server provides the HTTP REST API for the candidate evaluation
// engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/logiscareer/candidate-engine/internal/config"
	"github.com/logiscareer/candidate-engine/internal/cvparse"
	"github.com/logiscareer/candidate-engine/internal/db"
	"github.com/logiscareer/candidate-engine/internal/embedding"
	"github.com/logiscareer/candidate-engine/internal/engine"
	"github.com/logiscareer/candidate-engine/internal/llm"
	"github.com/logiscareer/candidate-engine/internal/server/middleware"
	"github.com/logiscareer/candidate-engine/internal/server/ratelimit"
	"github.com/logiscareer/candidate-engine/internal/skills"
)

// Server is the HTTP server wrapping the evaluation engine.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	evaluator   *engine.Evaluator
	parser      *cvparse.Parser
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// Config holds server configuration.
type Config struct {
	Port           int
	DatabaseURL    string
	GeminiAPIKey   string
	EmbeddingModel string
	APIKeyHash     string // bcrypt hash of the client API key; empty disables auth
}

// New creates a server instance. Without a Gemini API key the engine runs
// on the deterministic hash embedding fallback and skips LLM CV refinement.
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var primary embedding.Provider
	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := embedding.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding provider: %w", err)
		}
		primary = gemini

		llmClient, err = llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}
	provider := embedding.NewResilientProvider(primary)

	s := &Server{
		db:          database,
		evaluator:   engine.New(provider),
		parser:      cvparse.NewParser(skills.NewTaxonomy()),
		llmClient:   llmClient,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validate:    validator.New(),
	}

	apiKeyConfig, err := config.NewAPIKeyConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create API key config: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /cv/parse", s.handleParseCV)
	mux.HandleFunc("POST /cv/parse-to-candidate", s.handleParseToCandidate)
	mux.HandleFunc("POST /cv/extract-skills", s.handleExtractSkills)
	mux.HandleFunc("POST /cv/evaluate", s.handleEvaluateCV)
	mux.HandleFunc("GET /evaluations/{id}", s.handleGetEvaluation)
	mux.HandleFunc("GET /jobs/{job_id}/evaluations", s.handleListJobEvaluations)
	mux.HandleFunc("GET /health", s.handleHealth)

	auth := middleware.RequireAPIKey(apiKeyConfig, cfg.APIKeyHash)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(auth(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
