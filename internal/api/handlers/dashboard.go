package handlers

import (
	"net/http"
	"relocation-route-service/internal/api/dto"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/ports"

	"go.uber.org/zap"
)

// DashboardHandler exposes the current, blocked and alternative locations.
type DashboardHandler struct {
	Repo ports.LocationRepository
	Log  *zap.Logger
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Repo.Dashboard(r.Context())
	if err != nil {
		logging.OrNop(h.Log).Error("load dashboard failed", zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.NewDashboardResponse(d))
}
