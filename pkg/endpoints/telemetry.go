package endpoints

import (
	"net/http"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/telemetry"
)

func (s *Server) listTelemetry(w http.ResponseWriter, r *http.Request) {
	data, err := telemetry.LoadAll(r.Context(), s.pool)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getTelemetry(w http.ResponseWriter, r *http.Request) {
	telemetryID, ok := intParam(r, "telemetryId")
	if !ok {
		badRequest(w, "invalid telemetry id")
		return
	}
	data, err := telemetry.LoadByID(r.Context(), s.pool, telemetryID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) createTelemetry(w http.ResponseWriter, r *http.Request) {
	var payload model.Telemetry
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if payload.RaceID == 0 || payload.SessionID == 0 {
		badRequest(w, "race_id and session_id are required")
		return
	}
	data, err := telemetry.Create(r.Context(), s.pool, &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *Server) updateTelemetry(w http.ResponseWriter, r *http.Request) {
	telemetryID, ok := intParam(r, "telemetryId")
	if !ok {
		badRequest(w, "invalid telemetry id")
		return
	}
	var patch model.TelemetryPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	data, err := telemetry.Update(r.Context(), s.pool, telemetryID, &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) deleteTelemetry(w http.ResponseWriter, r *http.Request) {
	telemetryID, ok := intParam(r, "telemetryId")
	if !ok {
		badRequest(w, "invalid telemetry id")
		return
	}
	num, err := telemetry.DeleteByID(r.Context(), s.pool, telemetryID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeleted(w, num, "telemetry_id", telemetryID)
}
