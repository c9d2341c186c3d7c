package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"relocation-route-service/internal/platform/logging"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("body must contain only one JSON object")

func writeJSON(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.OrNop(log).Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(log, w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// decodeAndValidate writes a 400 response and returns false when the body
// is malformed or fails validation.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		if errors.Is(err, errTrailingData) {
			writeError(log, w, r, http.StatusBadRequest, err.Error())
			return false
		}
		writeError(log, w, r, http.StatusBadRequest, "invalid json body")
		return false
	}

	if err := validateStruct(dst); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeJSON(log, w, r, http.StatusBadRequest, map[string]any{
				"error":  verr.Message,
				"fields": verr.Fields,
			})
			return false
		}
		writeError(log, w, r, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}
