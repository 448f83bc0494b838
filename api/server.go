// Package api exposes the STAC catalog and search operations over HTTP.
package api

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/robert-malhotra/go-stac-search/search"
)

// Media types emitted by the service.
const (
	mediaTypeJSON    = "application/json"
	mediaTypeGeoJSON = "application/geo+json"
)

// Server serves the /stac surface backed by a search engine.
type Server struct {
	engine *search.Engine
	logger *slog.Logger
}

// NewServer builds a Server around the given engine.
func NewServer(engine *search.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, logger: logger.With("component", "api")}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, mediaType string, data any) {
	w.Header().Set("Content-Type", mediaType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeAsset(w http.ResponseWriter, data []byte, mediaType string) {
	if mediaType != "" {
		w.Header().Set("Content-Type", mediaType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("writing asset response", "error", err)
	}
}
