package handlers

import (
	"context"
	"errors"
	"net/http"
	"relocation-route-service/internal/api/dto"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/ports"
	"relocation-route-service/internal/workflow"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Longest a GET may block waiting for candidates via ?wait=.
const maxWait = 30 * time.Second

// SessionHandler drives selection workflow sessions over HTTP.
type SessionHandler struct {
	Store *workflow.Store
	Repo  ports.LocationRepository
	Log   *zap.Logger
}

// Create starts a session for the current dashboard. Route loading begins
// immediately and the response reports status "loading".
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, err := h.Repo.Dashboard(r.Context())
	if err != nil {
		logging.OrNop(h.Log).Error("load dashboard failed", zap.Error(err))
		writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	sess := h.Store.Create(d)
	sess.Start(r.Context())

	w.Header().Set("Location", "/api/v1/sessions/"+sess.ID())
	writeJSON(h.Log, w, r, http.StatusCreated, dto.NewSessionResponse(sess.Snapshot()))
}

// Get returns the session snapshot. With ?wait=<duration> it first blocks
// until candidates are ready or the wait elapses.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if v := r.URL.Query().Get("wait"); v != "" {
		wait, err := time.ParseDuration(v)
		if err != nil || wait < 0 {
			writeError(h.Log, w, r, http.StatusBadRequest, "wait must be a non-negative duration")
			return
		}
		wait = min(wait, maxWait)

		ctx, cancel := context.WithTimeout(r.Context(), wait)
		err = sess.Wait(ctx)
		cancel()
		if err != nil && r.Context().Err() != nil {
			return
		}
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.NewSessionResponse(sess.Snapshot()))
}

func (h *SessionHandler) OpenBrowser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.OpenBrowser()
	writeJSON(h.Log, w, r, http.StatusOK, dto.NewSessionResponse(sess.Snapshot()))
}

func (h *SessionHandler) CloseBrowser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.CloseBrowser()
	writeJSON(h.Log, w, r, http.StatusOK, dto.NewSessionResponse(sess.Snapshot()))
}

func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	h.candidateAction(w, r, (*workflow.Session).Select)
}

func (h *SessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.candidateAction(w, r, (*workflow.Session).Confirm)
}

func (h *SessionHandler) DismissConfirmation(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.DismissConfirmation()
	writeJSON(h.Log, w, r, http.StatusOK, dto.NewSessionResponse(sess.Snapshot()))
}

func (h *SessionHandler) candidateAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(*workflow.Session, string) error,
) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.CandidateActionRequest
	if !decodeAndValidate(h.Log, w, r, &req) {
		return
	}

	if err := action(sess, req.CandidateID); err != nil {
		switch {
		case errors.Is(err, workflow.ErrNotReady):
			writeError(h.Log, w, r, http.StatusConflict, err.Error())
		case errors.Is(err, workflow.ErrUnknownCandidate):
			writeError(h.Log, w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			logging.OrNop(h.Log).Error("session action failed", zap.String("session_id", sess.ID()), zap.Error(err))
			writeError(h.Log, w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.NewSessionResponse(sess.Snapshot()))
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*workflow.Session, bool) {
	sess, err := h.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.Log, w, r, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}
