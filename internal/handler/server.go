// Package handler implements the HTTP handlers for the trip application API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, application.go, etc.) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/gezi"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	ListPublic(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Stats(ctx context.Context, ref time.Time) (domain.TripStats, error)
}

// ApplicationServicer defines the operations the application handlers depend on.
type ApplicationServicer interface {
	Create(ctx context.Context, app domain.TripApplication) (domain.TripApplication, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams, query string) ([]domain.TripApplication, int64, error)
}

// Exporter builds the spreadsheet download for a trip's applications.
type Exporter interface {
	TripApplications(ctx context.Context, tripID uuid.UUID) (domain.ExportFile, error)
}

// GeziProxier forwards admin-panel operations to the sibling trip service.
type GeziProxier interface {
	FetchTrips(ctx context.Context, query url.Values) (json.RawMessage, error)
	CreateTrip(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
	GetTrip(ctx context.Context, tripID string) (json.RawMessage, error)
	UpdateTrip(ctx context.Context, tripID string, payload json.RawMessage) (json.RawMessage, error)
	FetchApplications(ctx context.Context, tripID string, query url.Values) (json.RawMessage, error)
	FetchStats(ctx context.Context) (json.RawMessage, error)
	ExportApplications(ctx context.Context, tripID string, query url.Values) (gezi.ExportResult, error)
}

// StudentLookup finds students on the management deployments by national ID.
type StudentLookup interface {
	FindStudents(ctx context.Context, tcNumber string) (json.RawMessage, error)
}

// Server implements the HTTP handlers for all API endpoints.
// Wire it in main.go via Server.Router. Methods are in domain-specific files
// but all operate on this struct.
type Server struct {
	trips    TripServicer
	apps     ApplicationServicer
	exporter Exporter
	gezi     GeziProxier
	lookup   StudentLookup
	log      *slog.Logger

	// dev echoes internal error detail in 500 bodies. Never set in production.
	dev bool
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, apps ApplicationServicer, exporter Exporter, gezi GeziProxier, lookup StudentLookup, log *slog.Logger, dev bool) *Server {
	return &Server{
		trips:    trips,
		apps:     apps,
		exporter: exporter,
		gezi:     gezi,
		lookup:   lookup,
		log:      log,
		dev:      dev,
	}
}

// RouterOptions carries the middleware the router composes per route group.
// Both fields are optional so tests can exercise handlers without them.
type RouterOptions struct {
	// CORS is the allow-list policy applied to the whole API surface.
	CORS func(http.Handler) http.Handler
	// ServiceAuth guards the admin-only /api/trips subtree.
	ServiceAuth func(http.Handler) http.Handler
}

// Router builds the chi router for the full REST surface.
// The service-auth guard wraps only the /api/trips subtree; the public form
// endpoints and the /api/gezi proxy (fronted by the management panel's own
// session auth) stay outside it.
func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	if opts.CORS != nil {
		r.Use(opts.CORS)
	}

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(api chi.Router) {
		api.Get("/trips/public", s.ListPublicTrips)
		api.Get("/students", s.LookupStudents)
		api.Post("/applications", s.CreateApplication)

		// Registered as a Group rather than a mounted subrouter so the
		// unauthenticated /trips/public route above can coexist with the
		// guarded /trips/{tripID} pattern (static segments win in chi).
		api.Group(func(t chi.Router) {
			if opts.ServiceAuth != nil {
				t.Use(opts.ServiceAuth)
			}
			t.Get("/trips", s.ListTrips)
			t.Post("/trips", s.CreateTrip)
			t.Get("/trips/stats", s.GetStats)
			t.Get("/trips/{tripID}", s.GetTrip)
			t.Patch("/trips/{tripID}", s.UpdateTrip)
			t.Get("/trips/{tripID}/applications", s.ListApplications)
			t.Get("/trips/{tripID}/applications/export", s.ExportApplications)
		})

		api.Route("/gezi/trips", func(g chi.Router) {
			g.Get("/", s.ProxyListTrips)
			g.Post("/", s.ProxyCreateTrip)
			g.Get("/stats", s.ProxyStats)
			g.Route("/{tripID}", func(gr chi.Router) {
				gr.Get("/", s.ProxyGetTrip)
				gr.Patch("/", s.ProxyUpdateTrip)
				gr.Get("/applications", s.ProxyListApplications)
				gr.Get("/applications/export", s.ProxyExportApplications)
			})
		})
	})

	return r
}

// tripIDParam parses the {tripID} route parameter.
func tripIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	return id, err == nil
}
