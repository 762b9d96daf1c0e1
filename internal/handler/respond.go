package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	appErrors "github.com/wishwell/wishwell-backend/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithField("error", err).Error("failed to write response")
	}
}

// respondError maps the service error taxonomy onto status codes:
// validation 400, unknown id 404, everything else (storage included) 500.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *appErrors.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
		return
	}
	var notFoundErr *appErrors.ErrCampaignNotFound
	if errors.As(err, &notFoundErr) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "Campaign not found"})
		return
	}
	logrus.WithField("error", err).Error("request failed")
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func respondBadBody(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
}
