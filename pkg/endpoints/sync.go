package endpoints

import (
	"context"
	"net/http"

	"github.com/f1stats/f1stats-go/pkg/sync"
)

// runSync guards against a server started without sync support and
// renders the pass result.
func (s *Server) runSync(
	w http.ResponseWriter,
	r *http.Request,
	pass func(ctx context.Context) (*sync.Result, error),
) {
	if s.syncer == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "sync not configured"})
		return
	}
	res, err := pass(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) syncRaces(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.syncer.SyncRaces)
}

func (s *Server) syncDrivers(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.syncer.SyncDrivers)
}

func (s *Server) syncAllSessions(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.syncer.SyncAllSessions)
}

func (s *Server) syncSessions(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	s.runSync(w, r, func(ctx context.Context) (*sync.Result, error) {
		return s.syncer.SyncSessions(ctx, raceID)
	})
}

func (s *Server) syncAllStints(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.syncer.SyncAllStints)
}

func (s *Server) syncStints(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	s.runSync(w, r, func(ctx context.Context) (*sync.Result, error) {
		return s.syncer.SyncStints(ctx, raceID)
	})
}

func (s *Server) syncAllLaps(w http.ResponseWriter, r *http.Request) {
	s.runSync(w, r, s.syncer.SyncAllLaps)
}

func (s *Server) syncLaps(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	s.runSync(w, r, func(ctx context.Context) (*sync.Result, error) {
		return s.syncer.SyncLaps(ctx, raceID)
	})
}

func (s *Server) syncReplayLaps(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := intParam(r, "sessionId")
	if !ok {
		badRequest(w, "invalid session id")
		return
	}
	s.runSync(w, r, func(ctx context.Context) (*sync.Result, error) {
		return s.syncer.SyncReplayLaps(ctx, sessionID)
	})
}

func (s *Server) correlateSession(w http.ResponseWriter, r *http.Request) {
	if s.correlator == nil {
		writeJSON(w, http.StatusNotImplemented,
			errorBody{Error: "correlation not configured"})
		return
	}
	sessionID, ok := intParam(r, "sessionId")
	if !ok {
		badRequest(w, "invalid session id")
		return
	}
	report, err := s.correlator.CorrelateSession(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
