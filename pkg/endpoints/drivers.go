package endpoints

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/driver"
)

func (s *Server) listDrivers(w http.ResponseWriter, r *http.Request) {
	data, err := driver.LoadAll(r.Context(), s.pool)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getDriver(w http.ResponseWriter, r *http.Request) {
	data, err := driver.LoadByID(r.Context(), s.pool, chi.URLParam(r, "driverId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) createDriver(w http.ResponseWriter, r *http.Request) {
	var payload model.Driver
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if payload.FullName == "" {
		badRequest(w, "full_name is required")
		return
	}
	if payload.DriverID == "" {
		payload.DriverID = model.NormalizeDriverID(payload.FullName)
	}
	data, err := driver.Create(r.Context(), s.pool, &payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

func (s *Server) updateDriver(w http.ResponseWriter, r *http.Request) {
	var patch model.DriverPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid payload")
		return
	}
	data, err := driver.Update(r.Context(), s.pool,
		chi.URLParam(r, "driverId"), &patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) deleteDriver(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverId")
	num, err := driver.DeleteByID(r.Context(), s.pool, driverID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeDeleted(w, num, "driver_id", driverID)
}
