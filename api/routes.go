package api

import "net/http"

// RegisterRoutes attaches the /stac surface to the mux. More specific
// patterns take precedence over the catch-all path resolver.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /stac", s.HandleRoot)
	mux.HandleFunc("GET /stac/{$}", s.HandleRoot)
	mux.HandleFunc("GET /stac/search", s.HandleSearchGet)
	mux.HandleFunc("POST /stac/search", s.HandleSearchPost)
	mux.HandleFunc("GET /stac/collections", s.HandleCollections)
	mux.HandleFunc("GET /stac/collections/{id}", s.HandleCollection)
	mux.HandleFunc("GET /stac/{path...}", s.HandlePath)
}
