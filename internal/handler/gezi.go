package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/gezi"
)

// The /api/gezi/* handlers forward requests from the management panel to the
// sibling trip service. Bodies and query strings pass through untouched;
// upstream error statuses are re-emitted with their message so the panel sees
// the same failure it would talking to the service directly.

// ProxyListTrips handles GET /api/gezi/trips.
func (s *Server) ProxyListTrips(w http.ResponseWriter, r *http.Request) {
	body, err := s.gezi.FetchTrips(r.Context(), r.URL.Query())
	s.writeProxyResult(w, r, body, err)
}

// ProxyCreateTrip handles POST /api/gezi/trips.
func (s *Server) ProxyCreateTrip(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Geçersiz istek gövdesi")
		return
	}
	body, err := s.gezi.CreateTrip(r.Context(), payload)
	s.writeProxyResultStatus(w, r, http.StatusCreated, body, err)
}

// ProxyStats handles GET /api/gezi/trips/stats.
func (s *Server) ProxyStats(w http.ResponseWriter, r *http.Request) {
	body, err := s.gezi.FetchStats(r.Context())
	s.writeProxyResult(w, r, body, err)
}

// ProxyGetTrip handles GET /api/gezi/trips/{tripID}.
func (s *Server) ProxyGetTrip(w http.ResponseWriter, r *http.Request) {
	body, err := s.gezi.GetTrip(r.Context(), chi.URLParam(r, "tripID"))
	s.writeProxyResult(w, r, body, err)
}

// ProxyUpdateTrip handles PATCH /api/gezi/trips/{tripID}.
func (s *Server) ProxyUpdateTrip(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Geçersiz istek gövdesi")
		return
	}
	body, err := s.gezi.UpdateTrip(r.Context(), chi.URLParam(r, "tripID"), payload)
	s.writeProxyResult(w, r, body, err)
}

// ProxyListApplications handles GET /api/gezi/trips/{tripID}/applications.
func (s *Server) ProxyListApplications(w http.ResponseWriter, r *http.Request) {
	body, err := s.gezi.FetchApplications(r.Context(), chi.URLParam(r, "tripID"), r.URL.Query())
	s.writeProxyResult(w, r, body, err)
}

// ProxyExportApplications handles GET /api/gezi/trips/{tripID}/applications/export.
// The spreadsheet bytes and content headers are relayed as-is.
func (s *Server) ProxyExportApplications(w http.ResponseWriter, r *http.Request) {
	result, err := s.gezi.ExportApplications(r.Context(), chi.URLParam(r, "tripID"), r.URL.Query())
	if err != nil {
		s.writeProxyError(w, r, err)
		return
	}

	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	}
	if result.ContentDisposition != "" {
		w.Header().Set("Content-Disposition", result.ContentDisposition)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Body); err != nil {
		s.log.ErrorContext(r.Context(), "write proxied export body", "error", err)
	}
}

// writeProxyResult relays a successful upstream JSON body with status 200.
func (s *Server) writeProxyResult(w http.ResponseWriter, r *http.Request, body json.RawMessage, err error) {
	s.writeProxyResultStatus(w, r, http.StatusOK, body, err)
}

func (s *Server) writeProxyResultStatus(w http.ResponseWriter, r *http.Request, status int, body json.RawMessage, err error) {
	if err != nil {
		s.writeProxyError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.log.ErrorContext(r.Context(), "write proxied body", "error", err)
	}
}

// writeProxyError maps upstream and configuration failures onto responses.
// An UpstreamError keeps its original status; everything else is a 500.
func (s *Server) writeProxyError(w http.ResponseWriter, r *http.Request, err error) {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		s.writeError(w, upstream.Status, upstream.Message)
		return
	}
	if errors.Is(err, gezi.ErrNotConfigured) {
		s.log.ErrorContext(r.Context(), "gezi service not configured", "path", r.URL.Path)
		s.writeError(w, http.StatusInternalServerError, "Gezi servisi yapılandırılmamış")
		return
	}
	s.writeServerError(w, r, err)
}
