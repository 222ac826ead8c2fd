package handlers

import (
	"errors"
	"event-naming-service/internal/api/dto"
	"event-naming-service/internal/config"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

type DescribeHandler struct {
	Gazetteer domain.Gazetteer
	Config    config.ResolutionConfig
	Logger    *zap.Logger
}

// Describe answers "what is the nearest named place to this point".
// No location within range is a 200 with matched=false.
func (h *DescribeHandler) Describe(w http.ResponseWriter, r *http.Request) {
	log := nopIfNil(h.Logger)

	var req dto.DescribeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, log, http.StatusBadRequest, err.Error())
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, r, log, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	point, err := domain.NewCoordinates(*req.Latitude, *req.Longitude)
	if err != nil {
		writeError(w, r, log, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.Config
	if req.DirectionFormat != "" {
		if cfg.DirectionFormat, err = config.ParseDirectionFormat(req.DirectionFormat); err != nil {
			writeError(w, r, log, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.MaxDistanceKm != nil {
		if *req.MaxDistanceKm <= 0 {
			writeError(w, r, log, http.StatusBadRequest, "max_distance_km must be positive")
			return
		}
		cfg.MaxDistanceKm = *req.MaxDistanceKm
	}

	desc, err := services.DescribePoint(r.Context(), point, h.Gazetteer, cfg)
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, r, log, http.StatusBadRequest, cfgErr.Error())
			return
		}
		log.Error("describe point failed", zap.Error(err))
		writeError(w, r, log, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, log, http.StatusOK, dto.NewDescribeResponse(point, desc))
}
