package endpoints

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/provider"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // headers are out, nothing left to signal
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP status codes: missing data
// is 404, duplicate keys 409, provider transport failures 503, invalid
// provider payloads 502, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNoData):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, repository.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorBody{Error: "already exists"})
	case errors.Is(err, provider.ErrUpstreamUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	case errors.Is(err, provider.ErrUpstreamInvalid):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		s.log.Error("request failed", log.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// writeDeleted confirms a delete, echoing the key it applied to. A zero
// row count means the key did not exist.
func writeDeleted(w http.ResponseWriter, num int, keyName string, key any) {
	if num == 0 {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": num, keyName: key})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
