package endpoints

import (
	"net/http"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/session"
)

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	data, err := session.LoadAll(r.Context(), s.pool)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := intParam(r, "sessionId")
	if !ok {
		badRequest(w, "invalid session id")
		return
	}
	data, err := session.LoadBySessionID(r.Context(), s.pool, sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var payload model.Session
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if payload.SessionID == 0 || payload.RaceID == 0 {
		badRequest(w, "session_id and race_id are required")
		return
	}
	data, err := session.Create(r.Context(), s.pool, &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *Server) updateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := intParam(r, "sessionId")
	if !ok {
		badRequest(w, "invalid session id")
		return
	}
	var patch model.SessionPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	data, err := session.Update(r.Context(), s.pool, sessionID, &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := intParam(r, "sessionId")
	if !ok {
		badRequest(w, "invalid session id")
		return
	}
	num, err := session.DeleteBySessionID(r.Context(), s.pool, sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeleted(w, num, "session_id", sessionID)
}
