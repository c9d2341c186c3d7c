package handlers

import (
	"net/http"
	"relocation-route-service/internal/api/dto"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/workflow"

	"go.uber.org/zap"
)

type RouteHandler struct {
	Resolver workflow.RouteResolver
	Log      *zap.Logger
}

// Batch resolves one route per destination, in request order. Unreachable
// destinations are answered from built-in estimates, so a 200 always
// carries len(destinations) routes.
func (h *RouteHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteBatchRequest
	if !decodeAndValidate(h.Log, w, r, &req) {
		return
	}

	origin, err := domain.CoordsFromList(req.Origin)
	if err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
		return
	}

	dests := make([]domain.Coordinates, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		c, err := domain.CoordsFromList(d)
		if err != nil {
			writeError(h.Log, w, r, http.StatusBadRequest, err.Error())
			return
		}
		dests = append(dests, c)
	}

	routes, err := h.Resolver.ResolveBatch(r.Context(), origin, dests)
	if err != nil {
		logging.OrNop(h.Log).Error("route batch failed", zap.Int("destinations", len(dests)), zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "failed to resolve routes")
		return
	}

	res := dto.RouteBatchResponse{
		Routes: make([]dto.RouteResponse, 0, len(routes)),
	}
	for i, rr := range routes {
		res.Routes = append(res.Routes, dto.NewRouteResponse(origin, dests[i], rr))
	}

	writeJSON(h.Log, w, r, http.StatusOK, res)
}
