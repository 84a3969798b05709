package handler

import (
	"errors"
	"net/http"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

// xlsxContentType is the MIME type for Office Open XML spreadsheets.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportApplications handles GET /api/trips/{tripID}/applications/export.
// It streams the trip's applications as a single-sheet xlsx attachment.
func (s *Server) ExportApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Gezi bulunamadı")
		return
	}

	file, err := s.exporter.TripApplications(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Gezi bulunamadı")
			return
		}
		s.writeServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		s.log.ErrorContext(r.Context(), "write export body", "error", err)
	}
}
