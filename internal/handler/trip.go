package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/validation"
)

// dataResponse is the JSON success envelope: every endpoint wraps its
// payload in {"data": ...} the way the admin panel expects.
type dataResponse struct {
	Data any `json:"data"`
}

// ListTrips handles GET /api/trips.
// Query params: isActive=true|false, q (title/location substring),
// upcoming=true.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var filter domain.TripFilter

	if v := r.URL.Query().Get("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	filter.Query = r.URL.Query().Get("q")
	filter.UpcomingOnly = r.URL.Query().Get("upcoming") == "true"

	trips, err := s.trips.List(r.Context(), filter)
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Data: trips})
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Geçersiz JSON gövdesi")
		return
	}

	trip, fields := req.CreateTrip()
	if fields != nil {
		s.writeFieldErrors(w, "Gezi verisi doğrulanamadı", fields)
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, dataResponse{Data: created})
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Gezi bulunamadı")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Gezi bulunamadı")
			return
		}
		s.writeServerError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Data: trip})
}

// UpdateTrip handles PATCH /api/trips/{tripID}.
// Only fields present in the body are touched; a body with no recognized
// field is rejected.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Gezi bulunamadı")
		return
	}

	var req validation.UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Geçersiz JSON gövdesi")
		return
	}

	patch, fields := req.UpdateTrip()
	if fields != nil {
		s.writeFieldErrors(w, "Gezi verisi doğrulanamadı", fields)
		return
	}

	updated, err := s.trips.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "Gezi bulunamadı")
		case errors.Is(err, domain.ErrValidation):
			s.writeError(w, http.StatusBadRequest, businessMessage(err))
		default:
			s.writeServerError(w, r, err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Data: updated})
}

// GetStats handles GET /api/trips/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.trips.Stats(r.Context(), time.Now())
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Data: stats})
}

// ListPublicTrips handles GET /api/trips/public.
// This endpoint serves unauthenticated public trip data to the application
// form, so it deliberately answers any origin instead of the allow-list.
func (s *Server) ListPublicTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListPublic(r.Context())
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}

	allowAnyOrigin(w)
	s.writeJSON(w, http.StatusOK, dataResponse{Data: trips})
}

// allowAnyOrigin overrides the allow-list CORS headers with a wildcard.
// Credentials must not be combined with "*", so that header is dropped.
func allowAnyOrigin(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Del("Access-Control-Allow-Credentials")
}
