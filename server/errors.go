package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/esimov/triangulator"
	"github.com/esimov/triangulator/client"
	"github.com/esimov/triangulator/codec"
)

// Error codes returned in the JSON body of failed requests.
const (
	CodeInvalidID          = "INVALID_POINTSET_ID"
	CodePointSetNotFound   = "POINTSET_NOT_FOUND"
	CodeStoreUnavailable   = "POINTSET_MANAGER_UNAVAILABLE"
	CodeStoreError         = "POINTSET_MANAGER_ERROR"
	CodeInvalidPointSet    = "INVALID_POINTSET_DATA"
	CodeTriangulation      = "TRIANGULATION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	contentTypeJSON        = "application/json"
	contentTypeOctetStream = "application/octet-stream"
)

// ErrorBody is the JSON document sent with every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorClasses maps each error class to its response. The first match wins.
// A non-empty message replaces the error text in the response body, so that
// store addresses only reach the log.
var errorClasses = []struct {
	target  error
	status  int
	code    string
	message string
}{
	{client.ErrInvalidID, http.StatusBadRequest, CodeInvalidID, ""},
	{client.ErrNotFound, http.StatusNotFound, CodePointSetNotFound, ""},
	{client.ErrUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable, "point set store unavailable"},
	{client.ErrUpstream, http.StatusBadGateway, CodeStoreError, "point set store returned an error"},
	{codec.ErrDecode, http.StatusInternalServerError, CodeInvalidPointSet, ""},
	{triangulator.ErrInvalidInput, http.StatusInternalServerError, CodeTriangulation, ""},
}

// classify returns the status, code and public message for err.
func classify(err error) (int, string, string) {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			if c.message != "" {
				return c.status, c.code, c.message
			}
			return c.status, c.code, err.Error()
		}
	}
	return http.StatusInternalServerError, CodeInternal, "internal error"
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if err := writeJSON(w, status, ErrorBody{Code: code, Message: message}); err != nil {
		s.logger.Debugw("failed to write error response", "path", r.URL.Path, "error", err)
	}
}

// fail classifies err and writes the matching error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warnw("triangulation request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.Debugw("triangulation request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeError(w, r, status, code, message)
}
