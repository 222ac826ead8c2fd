package handlers

import (
	"errors"
	"event-naming-service/internal/api/dto"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/services"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	Namer  *services.EventNamer
	Logger *zap.Logger
}

// Get returns the stored event with its current descriptions.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := nopIfNil(h.Logger)
	eventID := chi.URLParam(r, "eventID")

	ev, err := h.Namer.Store.GetEvent(r.Context(), eventID)
	if err != nil {
		h.writeNamingError(w, r, log, eventID, err)
		return
	}

	writeJSON(w, r, log, http.StatusOK, dto.NewEventResponse(ev))
}

// Name runs the naming pipeline for one event. ?dry_run=true computes the
// result without writing it.
func (h *EventHandler) Name(w http.ResponseWriter, r *http.Request) {
	log := nopIfNil(h.Logger)
	eventID := chi.URLParam(r, "eventID")

	namer := *h.Namer
	if v := r.URL.Query().Get("dry_run"); v != "" {
		dryRun, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, log, http.StatusBadRequest, "dry_run must be a boolean")
			return
		}
		namer.DryRun = namer.DryRun || dryRun
	}

	out, err := namer.NameEvent(r.Context(), eventID)
	if err != nil {
		h.writeNamingError(w, r, log, eventID, err)
		return
	}

	writeJSON(w, r, log, http.StatusOK, dto.NewNamingResponse(out, namer.DryRun))
}

func (h *EventHandler) writeNamingError(w http.ResponseWriter, r *http.Request, log *zap.Logger, eventID string, err error) {
	var coordErr *domain.CoordinateError

	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, r, log, http.StatusNotFound, "event not found")
	case errors.Is(err, domain.ErrNoPreferredOrigin):
		writeError(w, r, log, http.StatusUnprocessableEntity, "event has no preferred origin")
	case errors.As(err, &coordErr):
		writeError(w, r, log, http.StatusUnprocessableEntity, coordErr.Error())
	default:
		log.Error("event request failed", zap.String("event_id", eventID), zap.Error(err))
		writeError(w, r, log, http.StatusInternalServerError, "internal server error")
	}
}
