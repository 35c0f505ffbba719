package endpoints

import (
	"net/http"
	"strconv"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/lap"
	"github.com/f1stats/f1stats-go/pkg/repository/stint"
)

func (s *Server) listLaps(w http.ResponseWriter, r *http.Request) {
	data, err := lap.LoadAll(r.Context(), s.pool)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getLap(w http.ResponseWriter, r *http.Request) {
	lapID, ok := intParam(r, "lapId")
	if !ok {
		badRequest(w, "invalid lap id")
		return
	}
	data, err := lap.LoadByID(r.Context(), s.pool, lapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// findLap looks a lap up by its composite natural key passed as query
// parameters: race_id, session_id, driver_number, lap_number.
func (s *Server) findLap(w http.ResponseWriter, r *http.Request) {
	key, ok := lapKeyFromQuery(r)
	if !ok {
		badRequest(w, "race_id, session_id, driver_number and lap_number are required")
		return
	}
	data, err := lap.LoadByKey(r.Context(), s.pool, key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func lapKeyFromQuery(r *http.Request) (model.LapKey, bool) {
	var key model.LapKey
	params := map[string]*int{
		"race_id":       &key.RaceID,
		"session_id":    &key.SessionID,
		"driver_number": &key.DriverNumber,
		"lap_number":    &key.LapNumber,
	}
	for name, target := range params {
		v, err := strconv.Atoi(r.URL.Query().Get(name))
		if err != nil {
			return key, false
		}
		*target = v
	}
	return key, true
}

func (s *Server) createLap(w http.ResponseWriter, r *http.Request) {
	var payload model.Lap
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if payload.RaceID == 0 || payload.SessionID == 0 {
		badRequest(w, "race_id and session_id are required")
		return
	}
	data, err := lap.Create(r.Context(), s.pool, &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *Server) updateLap(w http.ResponseWriter, r *http.Request) {
	lapID, ok := intParam(r, "lapId")
	if !ok {
		badRequest(w, "invalid lap id")
		return
	}
	var patch model.LapPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	data, err := lap.Update(r.Context(), s.pool, lapID, &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) deleteLap(w http.ResponseWriter, r *http.Request) {
	lapID, ok := intParam(r, "lapId")
	if !ok {
		badRequest(w, "invalid lap id")
		return
	}
	num, err := lap.DeleteByID(r.Context(), s.pool, lapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeleted(w, num, "lap_id", lapID)
}

// getLapStint resolves the stint a lap belongs to via lap range
// membership.
func (s *Server) getLapStint(w http.ResponseWriter, r *http.Request) {
	lapID, ok := intParam(r, "lapId")
	if !ok {
		badRequest(w, "invalid lap id")
		return
	}
	l, err := lap.LoadByID(r.Context(), s.pool, lapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := stint.LoadForLap(r.Context(), s.pool, l)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
