package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/validation"
)

// pagedResponse extends the success envelope with pagination metadata for
// the applications listing.
type pagedResponse struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// CreateApplication handles POST /api/applications.
// This is the public form submission endpoint: no service secret required.
func (s *Server) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Geçersiz JSON gövdesi")
		return
	}

	app, fields := req.CreateApplication()
	if fields != nil {
		s.writeFieldErrors(w, "Başvuru doğrulanamadı", fields)
		return
	}

	created, err := s.apps.Create(r.Context(), app)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDuplicate) {
			s.writeError(w, http.StatusBadRequest, businessMessage(err))
			return
		}
		s.writeServerError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    map[string]any{"id": created.ID},
	})
}

// ListApplications handles GET /api/trips/{tripID}/applications.
// Supports ?page= and ?limit= (defaults page=1, limit=20, max 100) and an
// optional ?q= substring filter over names and phone numbers.
func (s *Server) ListApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Geçersiz gezi ID")
		return
	}

	params := domain.NewPaginationParams(
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	apps, total, err := s.apps.ListByTrip(r.Context(), id, params, query)
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, pagedResponse{
		Data: apps,
		Pagination: pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed so NewPaginationParams falls back to its defaults.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
