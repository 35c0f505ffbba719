package endpoints

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
	"github.com/f1stats/f1stats-go/pkg/repository/session"
)

func intParam(r *http.Request, name string) (int, bool) {
	ret, err := strconv.Atoi(chi.URLParam(r, name))
	return ret, err == nil
}

func (s *Server) listRaces(w http.ResponseWriter, r *http.Request) {
	data, err := race.LoadAll(r.Context(), s.pool)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getRace(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	data, err := race.LoadByID(r.Context(), s.pool, raceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) createRace(w http.ResponseWriter, r *http.Request) {
	var payload model.Race
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if payload.RaceID == 0 {
		badRequest(w, "race_id is required")
		return
	}
	data, err := race.Create(r.Context(), s.pool, &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *Server) updateRace(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	var patch model.RacePatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	data, err := race.Update(r.Context(), s.pool, raceID, &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) deleteRace(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	num, err := race.DeleteByID(r.Context(), s.pool, raceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeleted(w, num, "race_id", raceID)
}

func (s *Server) listRaceSessions(w http.ResponseWriter, r *http.Request) {
	raceID, ok := intParam(r, "raceId")
	if !ok {
		badRequest(w, "invalid race id")
		return
	}
	data, err := session.LoadByRaceID(r.Context(), s.pool, raceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
