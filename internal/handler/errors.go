package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/validation"
)

// errorResponse is the JSON error envelope shared by every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// writeJSON serializes v with the given status. Encoding failures at this
// point mean the response is already committed; they are logged, not retried.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// writeError writes a plain error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// writeFieldErrors writes a 400 with the top-level message and the per-field
// validation detail.
func (s *Server) writeFieldErrors(w http.ResponseWriter, message string, fields validation.FieldErrors) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Details: fields})
}

// writeServerError logs the full error and answers with a generic 500.
// In development mode the error text is echoed to the caller for debugging.
func (s *Server) writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
	resp := errorResponse{Error: "Internal server error"}
	if s.dev {
		resp.Message = err.Error()
	}
	s.writeJSON(w, http.StatusInternalServerError, resp)
}

// businessMessage extracts the human-readable part of a wrapped sentinel
// error, e.g. "service.TripService.Update: validation error: Güncellenecek
// alan bulunamadı" → "Güncellenecek alan bulunamadı".
func businessMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrDuplicate.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	return msg
}
