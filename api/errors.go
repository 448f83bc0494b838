package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/robert-malhotra/go-stac-search/search"
)

// Error codes of the {code, description} error body.
const (
	codeNotFound         = "NotFound"
	codeInvalidParameter = "InvalidParameterValue"
	codeNoApplicableCode = "NoApplicableCode"
)

// ErrorResponse is the error body returned for failed requests.
type ErrorResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, description string) {
	s.writeJSON(w, status, mediaTypeJSON, ErrorResponse{Code: code, Description: description})
}

// handleSearchError maps the search error taxonomy onto HTTP responses.
// Connection and query failures are logged in full; the client only sees a
// generic message.
func (s *Server) handleSearchError(w http.ResponseWriter, err error) {
	var notFound *search.NotFoundError
	var invalid *search.InvalidParameterError
	var connection *search.ConnectionError
	var query *search.QueryError

	switch {
	case errors.As(err, &notFound):
		description := notFound.Detail
		if description == "" {
			description = "resource not found"
		}
		s.writeError(w, http.StatusNotFound, codeNotFound, description)
	case errors.As(err, &invalid):
		s.writeError(w, http.StatusBadRequest, codeInvalidParameter, invalid.Reason)
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Error("search deadline exceeded")
		s.writeError(w, http.StatusInternalServerError, codeNoApplicableCode, "search timed out")
	case errors.As(err, &connection):
		s.logger.Error("upstream connection failure", "error", connection.Err)
		s.writeError(w, http.StatusInternalServerError, codeNoApplicableCode, "connection error (check logs)")
	case errors.As(err, &query):
		s.logger.Error("data query failure", "error", query.Err)
		s.writeError(w, http.StatusInternalServerError, codeNoApplicableCode, "data query error")
	default:
		s.logger.Error("unexpected failure", "error", err)
		s.writeError(w, http.StatusInternalServerError, codeNoApplicableCode, "internal error")
	}
}
