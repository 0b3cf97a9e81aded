// Package api exposes the Orchestrator over a small HTTP surface: search,
// index status, and a health check. It is one of the external callers the
// orchestrator supports; the desktop shell and MCP server are others.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
)

// Server provides HTTP API endpoints over an Orchestrator.
type Server struct {
	orch   *orchestrator.Orchestrator
	port   int
	server *http.Server
}

// NewServer creates a new API server instance.
func NewServer(orch *orchestrator.Orchestrator, port int) *Server {
	return &Server{orch: orch, port: port}
}

// searchRequest is the POST /v1/search request body.
type searchRequest struct {
	Query string `json:"query"`
}

// searchResponse is the POST /v1/search response body.
type searchResponse struct {
	Results []searchResultDTO `json:"results"`
}

type searchResultDTO struct {
	Path              string  `json:"path"`
	Title             string  `json:"title"`
	SourceType        string  `json:"source_type"`
	ModifiedDate      string  `json:"modified_date"`
	FinalScore        float64 `json:"final_score"`
	BestMatchingChunk string  `json:"best_matching_chunk,omitempty"`
}

// apiError is the JSON error envelope for 4xx/5xx responses.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", s.handleSearch)
	mux.HandleFunc("/v1/indexStatus", s.handleIndexStatus)
	mux.HandleFunc("/health", s.handleHealth)

	handler := s.requestIDMiddleware(s.loggingMiddleware(mux))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("api: listening on port %d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Println("api: shutting down")
	return s.server.Shutdown(ctx)
}

type requestIDKey struct{}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		log.Printf("%s %s %d %v request_id=%s", r.Method, r.URL.Path, wrapper.statusCode,
			time.Since(start), requestIDFromContext(r.Context()))
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(r, w, http.StatusMethodNotAllowed, "method_not_allowed", "only POST is allowed")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(r, w, http.StatusBadRequest, "input_invalid", "invalid JSON request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeError(r, w, http.StatusBadRequest, "input_invalid", "query cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	results, err := s.orch.HybridSearch(ctx, req.Query)
	if err != nil {
		log.Printf("api: search failed request_id=%s: %v", requestIDFromContext(r.Context()), err)
		s.writeError(r, w, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}

	dtos := make([]searchResultDTO, len(results))
	for i, res := range results {
		dtos[i] = searchResultDTO{
			Path:              res.Path,
			Title:             res.Title,
			SourceType:        res.SourceType,
			ModifiedDate:      res.ModifiedDate.UTC().Format(time.RFC3339),
			FinalScore:        res.FinalScore,
			BestMatchingChunk: res.BestMatchingChunk,
		}
	}
	s.writeJSON(w, http.StatusOK, searchResponse{Results: dtos})
}

func (s *Server) handleIndexStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(r, w, http.StatusMethodNotAllowed, "method_not_allowed", "only GET is allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.orch.Status())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("api: failed to encode JSON response: %v", err)
	}
}

func (s *Server) writeError(r *http.Request, w http.ResponseWriter, statusCode int, code, message string) {
	s.writeJSON(w, statusCode, apiError{Code: code, Message: message, RequestID: requestIDFromContext(r.Context())})
}

// responseWrapper wraps http.ResponseWriter to capture the status code for
// access logging.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
