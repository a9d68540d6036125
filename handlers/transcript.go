package handlers

import (
	"net/http"

	"tubescribe/errors"
	"tubescribe/models"
	"tubescribe/services/transcript"

	"github.com/sirupsen/logrus"
)

type TranscriptHandler struct {
	service transcript.Service
	debug   bool
	logger  *logrus.Logger
}

func NewTranscriptHandler(service transcript.Service, debug bool, logger *logrus.Logger) *TranscriptHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TranscriptHandler{
		service: service,
		debug:   debug,
		logger:  logger,
	}
}

// Fetch handles POST /transcript.
func (h *TranscriptHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	const op = "TranscriptHandler.Fetch"

	var req models.TranscriptRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	if req.URL == "" {
		respondError(w, r, errors.InvalidInput(op, nil, "URL is required"), h.debug)
		return
	}

	text, err := h.service.Fetch(r.Context(), req.URL)
	if err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	respondJSON(w, http.StatusOK, models.TranscriptResponse{Transcript: text})
}
