package handlers

import (
	"encoding/json"
	"net/http"

	"tubescribe/errors"
	"tubescribe/models"

	"github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// respondError maps any error to the {error, details?} body. Details are
// only echoed when the service runs in debug mode.
func respondError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	code := http.StatusInternalServerError
	body := models.ErrorResponse{Error: "Internal server error"}

	if appErr, ok := err.(*errors.AppError); ok {
		code = appErr.Code
		body.Error = appErr.Message
		if debug && appErr.Details != nil {
			body.Details = appErr.Details
		}
	}

	logrus.WithFields(logrus.Fields{
		"error":      err,
		"status":     code,
		"request_id": r.Context().Value("request_id"),
		"path":       r.URL.Path,
		"method":     r.Method,
	}).Error("Request error")

	respondJSON(w, code, body)
}

func readJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.InvalidInput("readJSON", err, "Invalid JSON format")
	}
	return nil
}
