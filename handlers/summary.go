package handlers

import (
	"net/http"

	"tubescribe/errors"
	"tubescribe/models"
	"tubescribe/services/summary"

	"github.com/sirupsen/logrus"
)

type SummaryHandler struct {
	service summary.Service
	debug   bool
	logger  *logrus.Logger
}

func NewSummaryHandler(service summary.Service, debug bool, logger *logrus.Logger) *SummaryHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SummaryHandler{
		service: service,
		debug:   debug,
		logger:  logger,
	}
}

// Create handles POST /summary.
func (h *SummaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "SummaryHandler.Create"

	var req models.SummaryRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	if req.Transcript == "" {
		respondError(w, r, errors.InvalidInput(op, nil, "Transcript is required"), h.debug)
		return
	}

	text, err := h.service.Summarize(r.Context(), req.Transcript)
	if err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	respondJSON(w, http.StatusOK, models.SummaryResponse{Summary: text})
}
