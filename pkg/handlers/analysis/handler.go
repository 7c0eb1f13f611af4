package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/adapters"
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/engine"
	"github.com/de-tools/ops-atlas/pkg/services/export"
	"github.com/de-tools/ops-atlas/pkg/services/refresh"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

const maxBodyBytes = 4 << 20

type Handler struct {
	engine    engine.Engine
	refresher refresh.Controller
}

// NewHandler wires the HTTP surface to the engine. refresher may be nil when
// no upstream is configured; the refresh routes then answer 503.
func NewHandler(eng engine.Engine, refresher refresh.Controller) *Handler {
	return &Handler{
		engine:    eng,
		refresher: refresher,
	}
}

func (h *Handler) AcceptEnvelope(w http.ResponseWriter, r *http.Request) {
	var env domain.RawResponseEnvelope
	if !decode(w, r, &env) {
		return
	}

	snap := h.engine.Accept(r.Context(), &env)
	if snap.State == domain.StateFailed {
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: snap.Reason})
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snap))
}

func (h *Handler) AcceptFailure(w http.ResponseWriter, r *http.Request) {
	var signal api.FailureSignal
	if !decode(w, r, &signal) {
		return
	}
	if signal.Reason == "" {
		writeError(w, r, http.StatusBadRequest, "reason is required")
		return
	}

	snap := h.engine.Fail(r.Context(), signal.Reason)
	writeJSON(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snap))
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Current()
	if snap.State == domain.StateIdle {
		writeError(w, r, http.StatusNotFound, "no analysis yet")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snap))
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	res, ok := h.currentResult(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, export.NewAlertsOnly(res))
}

func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	kind, err := export.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, ok := h.currentResult(w, r)
	if !ok {
		return
	}
	doc, err := export.Build(kind, res)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := export.Encode(w, doc, format); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("kind", string(kind)).Msg("failed to encode export")
	}
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapAnalysisConfigDomainToApi(h.engine.Config()))
}

func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	var body api.AnalysisConfig
	if !decode(w, r, &body) {
		return
	}
	cfg, err := adapters.MapAnalysisConfigApiToDomain(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.engine.UpdateConfig(r.Context(), cfg)
	writeJSON(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snap))
}

func (h *Handler) Reprocess(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.Reprocess(r.Context())
	if errors.Is(err, domain.ErrNoEnvelope) {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snap))
}

func (h *Handler) RefreshStore(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "no upstream configured")
		return
	}
	target := refresh.Target{Store: chi.URLParam(r, "store"), Date: chi.URLParam(r, "date")}

	snap, err := h.refresher.Refresh(r.Context(), target)
	switch {
	case errors.Is(err, client.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, client.ErrUpstream):
		writeError(w, r, http.StatusBadGateway, err.Error())
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snap))
	}
}

// StartPolling begins periodic refreshes of a store for the current day.
func (h *Handler) StartPolling(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "no upstream configured")
		return
	}
	err := h.refresher.Start(r.Context(), refresh.Target{Store: chi.URLParam(r, "store")})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) StopPolling(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "no upstream configured")
		return
	}
	err := h.refresher.Cancel(r.Context(), chi.URLParam(r, "store"))
	if errors.Is(err, refresh.ErrNotRunning) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// currentResult writes the error response itself when there is no result:
// 404 before the first analysis finishes, 409 when the last one failed.
func (h *Handler) currentResult(w http.ResponseWriter, r *http.Request) (*domain.AnalysisResult, bool) {
	snap := h.engine.Current()
	switch {
	case snap.Result != nil:
		return snap.Result, true
	case snap.State == domain.StateFailed:
		writeError(w, r, http.StatusConflict, "analysis failed: "+snap.Reason)
	default:
		writeError(w, r, http.StatusNotFound, "no analysis result available")
	}
	return nil, false
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, api.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
	}
}
