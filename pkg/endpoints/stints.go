package endpoints

import (
	"net/http"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/stint"
)

func (s *Server) listStints(w http.ResponseWriter, r *http.Request) {
	data, err := stint.LoadAll(r.Context(), s.pool)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getStint(w http.ResponseWriter, r *http.Request) {
	stintID, ok := intParam(r, "stintId")
	if !ok {
		badRequest(w, "invalid stint id")
		return
	}
	data, err := stint.LoadByID(r.Context(), s.pool, stintID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) createStint(w http.ResponseWriter, r *http.Request) {
	var payload model.Stint
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if payload.RaceID == 0 || payload.SessionID == 0 {
		badRequest(w, "race_id and session_id are required")
		return
	}
	data, err := stint.Create(r.Context(), s.pool, &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *Server) updateStint(w http.ResponseWriter, r *http.Request) {
	stintID, ok := intParam(r, "stintId")
	if !ok {
		badRequest(w, "invalid stint id")
		return
	}
	var patch model.StintPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	data, err := stint.Update(r.Context(), s.pool, stintID, &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) deleteStint(w http.ResponseWriter, r *http.Request) {
	stintID, ok := intParam(r, "stintId")
	if !ok {
		badRequest(w, "invalid stint id")
		return
	}
	num, err := stint.DeleteByID(r.Context(), s.pool, stintID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeleted(w, num, "stint_id", stintID)
}
