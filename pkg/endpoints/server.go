// Package endpoints provides the HTTP API. Entities are served as CRUD
// resources, sync and correlation runs are triggered via POST.
package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/correlate"
	"github.com/f1stats/f1stats-go/pkg/export"
	"github.com/f1stats/f1stats-go/pkg/sync"
	"github.com/f1stats/f1stats-go/version"
)

type Server struct {
	pool       *pgxpool.Pool
	syncer     *sync.Syncer
	correlator *correlate.Correlator
	log        *log.Logger
	router     chi.Router
}

type Option func(*Server)

func WithSyncer(s *sync.Syncer) Option {
	return func(srv *Server) {
		srv.syncer = s
	}
}

func WithCorrelator(c *correlate.Correlator) Option {
	return func(srv *Server) {
		srv.correlator = c
	}
}

func WithLogger(l *log.Logger) Option {
	return func(srv *Server) {
		srv.log = l
	}
}

func NewServer(pool *pgxpool.Pool, opts ...Option) *Server {
	ret := &Server{
		pool: pool,
		log:  log.Default().Named("api"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.router = ret.routes()
	return ret
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Get("/", s.banner)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/drivers", func(r chi.Router) {
			r.Get("/", s.listDrivers)
			r.Post("/", s.createDriver)
			r.Get("/{driverId}", s.getDriver)
			r.Put("/{driverId}", s.updateDriver)
			r.Delete("/{driverId}", s.deleteDriver)
		})
		r.Route("/races", func(r chi.Router) {
			r.Get("/", s.listRaces)
			r.Post("/", s.createRace)
			r.Get("/{raceId}", s.getRace)
			r.Put("/{raceId}", s.updateRace)
			r.Delete("/{raceId}", s.deleteRace)
			r.Get("/{raceId}/sessions", s.listRaceSessions)
		})
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.createSession)
			r.Get("/{sessionId}", s.getSession)
			r.Put("/{sessionId}", s.updateSession)
			r.Delete("/{sessionId}", s.deleteSession)
		})
		r.Route("/laps", func(r chi.Router) {
			r.Get("/", s.listLaps)
			r.Post("/", s.createLap)
			r.Get("/find", s.findLap)
			r.Get("/{lapId}", s.getLap)
			r.Put("/{lapId}", s.updateLap)
			r.Delete("/{lapId}", s.deleteLap)
			r.Get("/{lapId}/stint", s.getLapStint)
		})
		r.Route("/stints", func(r chi.Router) {
			r.Get("/", s.listStints)
			r.Post("/", s.createStint)
			r.Get("/{stintId}", s.getStint)
			r.Put("/{stintId}", s.updateStint)
			r.Delete("/{stintId}", s.deleteStint)
		})
		r.Route("/telemetry", func(r chi.Router) {
			r.Get("/", s.listTelemetry)
			r.Post("/", s.createTelemetry)
			r.Get("/{telemetryId}", s.getTelemetry)
			r.Put("/{telemetryId}", s.updateTelemetry)
			r.Delete("/{telemetryId}", s.deleteTelemetry)
		})
		r.Route("/sync", func(r chi.Router) {
			r.Post("/races", s.syncRaces)
			r.Post("/drivers", s.syncDrivers)
			r.Post("/sessions", s.syncAllSessions)
			r.Post("/sessions/{raceId}", s.syncSessions)
			r.Post("/stints", s.syncAllStints)
			r.Post("/stints/{raceId}", s.syncStints)
			r.Post("/laps", s.syncAllLaps)
			r.Post("/laps/{raceId}", s.syncLaps)
			r.Post("/replay/{sessionId}", s.syncReplayLaps)
		})
		r.Get("/correlate/{sessionId}", s.correlateSession)
		r.Get("/export/laps.csv", s.exportLaps)
	})
	return r
}

func (s *Server) banner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "f1stats",
		"version": version.Version,
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) exportLaps(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="laps.csv"`)
	exporter := export.NewExporter(s.pool)
	if _, err := exporter.WriteCSV(r.Context(), w); err != nil {
		s.log.Error("lap export failed", log.ErrorField(err))
	}
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
