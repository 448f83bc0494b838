package api

import (
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/robert-malhotra/go-stac-search/pkg/stac"
	"github.com/robert-malhotra/go-stac-search/search"
)

// HandleRoot serves the service root Catalog document.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mediaTypeJSON, s.engine.RootCatalog())
}

// HandleSearchGet runs a search from GET query parameters.
func (s *Server) HandleSearchGet(w http.ResponseWriter, r *http.Request) {
	q, err := search.ParseQuery(r.URL.Query())
	if err != nil {
		s.handleSearchError(w, err)
		return
	}
	s.runSearch(w, r, q)
}

// HandleSearchPost runs a search from a JSON request body.
func (s *Server) HandleSearchPost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidParameter, "unreadable request body")
		return
	}

	var q search.Query
	if err := json.Unmarshal(body, &q); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidParameter, "invalid JSON request body")
		return
	}
	s.runSearch(w, r, &q)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, q *search.Query) {
	result, err := s.engine.Search(r.Context(), q)
	if err != nil {
		s.handleSearchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mediaTypeGeoJSON, result)
}

// HandlePath resolves an arbitrary catalog path. Structured nodes are
// returned as JSON documents; raw assets are streamed with their own media
// type and bypass the search pipeline entirely.
func (s *Server) HandlePath(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	resolved, err := s.engine.ResolvePath(r.Context(), path)
	if err != nil {
		s.handleSearchError(w, err)
		return
	}

	if resolved.IsAsset() {
		s.writeAsset(w, resolved.Asset, resolved.MediaType)
		return
	}
	s.writeJSON(w, http.StatusOK, mediaTypeJSON, resolved.Node)
}

// HandleCollections lists every configured collection's document. Two or
// more collections are wrapped in a collections envelope; a single one is
// served bare.
func (s *Server) HandleCollections(w http.ResponseWriter, r *http.Request) {
	ids := s.engine.CollectionIDs()
	nodes := make([]stac.Node, 0, len(ids))
	for _, id := range ids {
		resolved, err := s.engine.ResolvePath(r.Context(), id)
		if err != nil {
			s.handleSearchError(w, err)
			return
		}
		if resolved.IsAsset() {
			continue
		}
		nodes = append(nodes, prepareCollectionNode(resolved.Node, id, false))
	}
	// A single configured collection is served bare, without the envelope.
	if len(nodes) == 1 {
		s.writeJSON(w, http.StatusOK, mediaTypeJSON, nodes[0])
		return
	}
	s.writeJSON(w, http.StatusOK, mediaTypeJSON, stac.CollectionsList{Collections: nodes})
}

// HandleCollection serves a single collection's document, unwrapped.
func (s *Server) HandleCollection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resolved, err := s.engine.ResolvePath(r.Context(), id)
	if err != nil {
		s.handleSearchError(w, err)
		return
	}
	if resolved.IsAsset() {
		s.writeAsset(w, resolved.Asset, resolved.MediaType)
		return
	}
	s.writeJSON(w, http.StatusOK, mediaTypeJSON, prepareCollectionNode(resolved.Node, id, true))
}

// prepareCollectionNode applies the listing-level tweaks: a Collection
// fetched by id gets its title prefixed with the dataset name, and Feature
// documents have their default asset removed.
func prepareCollectionNode(node stac.Node, dataset string, byID bool) stac.Node {
	switch n := node.(type) {
	case *stac.Collection:
		if byID {
			n.Title = dataset + "/" + n.Title
		}
	case *stac.Item:
		delete(n.Assets, "default")
	}
	return node
}
