package handlers

import (
	"net/http"

	"tubescribe/errors"
	"tubescribe/models"
	"tubescribe/services/account"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service account.Service
	debug   bool
	logger  *logrus.Logger
}

func NewAccountHandler(service account.Service, debug bool, logger *logrus.Logger) *AccountHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AccountHandler{
		service: service,
		debug:   debug,
		logger:  logger,
	}
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Account
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Get handles GET /accounts/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.Get"

	id := r.PathValue("id")
	if id == "" {
		respondError(w, r, errors.InvalidInput(op, nil, "Account ID is required"), h.debug)
		return
	}

	acct, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.debug)
		return
	}

	respondJSON(w, http.StatusOK, acct)
}
