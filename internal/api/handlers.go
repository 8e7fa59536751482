package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/candlepilots/planguard/internal/store"
	"github.com/candlepilots/planguard/pkg/entitlements"
	"github.com/candlepilots/planguard/pkg/guard"
	"github.com/candlepilots/planguard/pkg/logger"
	"github.com/candlepilots/planguard/pkg/plan"
)

// Handlers holds the CandlePilots API surface: CRUD-style
// creation endpoints gated by resource limits, a usage dashboard, the
// public plan catalog, and a feature-gated analytics endpoint.
type Handlers struct {
	catalog *plan.Catalog
	svc     *entitlements.Service
	store   store.Store
	log     *slog.Logger
}

// NewHandlers wires the API surface together.
func NewHandlers(catalog *plan.Catalog, svc *entitlements.Service, st store.Store, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{catalog: catalog, svc: svc, store: st, log: log}
}

type createResourceRequest struct {
	Name string `json:"name"`
}

type createResourceResponse struct {
	ID   uuid.UUID     `json:"id"`
	Kind plan.Resource `json:"kind"`
	Name string        `json:"name"`
}

// CreateResource inserts one row of the given kind for the caller's
// business. The guard has already verified authentication and quota; the
// insert itself is the caller-side half of the advisory check-then-create
// pattern.
func (h *Handlers) CreateResource(kind plan.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := guard.UserIDFromContext(r.Context())
		if !ok {
			guard.Unauthorized().Write(w)
			return
		}

		var req createResourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "Name is required")
			return
		}

		found, err := h.store.FindBusinessByOwner(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrBusinessNotFound) {
				writeError(w, http.StatusForbidden, "Business not found")
				return
			}
			h.serverError(w, r, err, "find business")
			return
		}

		res := &store.Resource{
			BusinessID: found.Business.ID,
			Kind:       kind,
			Name:       req.Name,
		}
		if err := h.store.InsertResource(r.Context(), res); err != nil {
			h.serverError(w, r, err, "insert resource")
			return
		}

		writeJSON(w, http.StatusCreated, createResourceResponse{
			ID:   res.ID,
			Kind: kind,
			Name: res.Name,
		})
	}
}

// Usage reports current usage against every limit of the caller's plan.
func (h *Handlers) Usage(w http.ResponseWriter, r *http.Request) {
	userID, ok := guard.UserIDFromContext(r.Context())
	if !ok {
		guard.Unauthorized().Write(w)
		return
	}

	usage, err := h.svc.AllUsage(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entitlements.ErrBusinessNotFound) {
			writeError(w, http.StatusForbidden, "Business not found")
			return
		}
		h.serverError(w, r, err, "aggregate usage")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"usage": usage})
}

// Plans lists the public catalog with limits, features, and pricing.
func (h *Handlers) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plans": h.catalog.Plans()})
}

type featureResponse struct {
	Feature plan.Feature `json:"feature"`
	Enabled bool         `json:"enabled"`
}

// Feature reports whether a single capability is enabled for the caller.
func (h *Handlers) Feature(w http.ResponseWriter, r *http.Request) {
	userID, ok := guard.UserIDFromContext(r.Context())
	if !ok {
		guard.Unauthorized().Write(w)
		return
	}

	feature, err := plan.ParseFeature(chi.URLParam(r, "feature"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown feature")
		return
	}

	writeJSON(w, http.StatusOK, featureResponse{
		Feature: feature,
		Enabled: h.svc.HasFeature(r.Context(), userID, feature),
	})
}

// Analytics is a feature-gated endpoint; the guard has already checked
// the advanced_analytics flag, so reaching the handler means the caller
// is entitled. It reuses the usage aggregate as its data source.
func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := guard.UserIDFromContext(r.Context())
	if !ok {
		guard.Unauthorized().Write(w)
		return
	}

	usage, err := h.svc.AllUsage(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err, "aggregate usage")
		return
	}

	var total int64
	for _, info := range usage {
		total += info.Current
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalResources": total,
		"byKind":         usage,
	})
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error, op string) {
	h.log.LogAttrs(r.Context(), slog.LevelError, "request failed",
		logger.Error(err),
		slog.String("op", op),
		slog.String("path", r.URL.Path),
		logger.Component("api"),
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
