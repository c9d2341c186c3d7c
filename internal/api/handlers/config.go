package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

const (
	TilesMapbox        = "mapbox"
	TilesOpenStreetMap = "openstreetmap"
)

// ConfigHandler reports presentational settings to the map client.
type ConfigHandler struct {
	HasMapboxToken bool
	Log            *zap.Logger
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	tiles := TilesOpenStreetMap
	if h.HasMapboxToken {
		tiles = TilesMapbox
	}

	writeJSON(h.Log, w, r, http.StatusOK, map[string]any{
		"map_tiles":        tiles,
		"has_mapbox_token": h.HasMapboxToken,
	})
}
