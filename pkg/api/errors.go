package api

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"pulse/pkg/storage"
)

// statusFor maps a service error to the HTTP status reported for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrSimulatedFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	status := statusFor(err)
	sID := shorten(GetRequestID(r.Context()))
	if status == http.StatusInternalServerError {
		log.Errorf("[%s][%s] %v", handler, sID, err)
		http.Error(w, "Internal Server Error", status)
		return
	}

	log.Infof("[%s][%s] %v", handler, sID, err)
	http.Error(w, err.Error(), status)
}

func badRequest(w http.ResponseWriter, r *http.Request, handler string, err error) {
	log.Debugf("[%s][%s] bad request: %v", handler, shorten(GetRequestID(r.Context())), err)
	http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
}
