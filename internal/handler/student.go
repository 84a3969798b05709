package handler

import (
	"net/http"
	"strings"
)

// LookupStudents handles GET /api/students?tcNumber=...
// Public endpoint used by the application form to prefill student data; like
// /api/trips/public it answers any origin. The national ID must be exactly
// eleven digits before any upstream call is made.
func (s *Server) LookupStudents(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)

	tcNumber := strings.TrimSpace(r.URL.Query().Get("tcNumber"))
	if !validTCNumber(tcNumber) {
		s.writeError(w, http.StatusBadRequest, "Geçerli bir TC kimlik numarası giriniz")
		return
	}

	body, err := s.lookup.FindStudents(r.Context(), tcNumber)
	if err != nil {
		s.log.ErrorContext(r.Context(), "student lookup failed", "error", err)
		s.writeError(w, http.StatusBadGateway, "Öğrenci bilgisine şu anda ulaşılamıyor")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.log.ErrorContext(r.Context(), "write lookup body", "error", err)
	}
}

// validTCNumber reports whether v is an eleven-digit national ID.
func validTCNumber(v string) bool {
	if len(v) != 11 {
		return false
	}
	for _, c := range v {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
