package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rl1809/inventory-index/internal/core/domain"
	"github.com/rl1809/inventory-index/internal/core/service"
)

const requestIDHeader = "X-Request-ID"

type HTTPHandler struct {
	inventoryService *service.InventoryService
	logger           *slog.Logger
}

type SaveHTTPRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InventoryHTTPResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PrefixCountHTTPResponse struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

type ErrorHTTPResponse struct {
	Message string `json:"message"`
}

func NewHTTPHandler(inventoryService *service.InventoryService, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{inventoryService: inventoryService, logger: logger}
}

// Register mounts the inventory routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("POST /api/inventory", h.Save)
	mux.HandleFunc("GET /api/inventory/{id}", h.Lookup)
	mux.HandleFunc("GET /api/shards/{prefix}", h.CountPrefix)
}

func (h *HTTPHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "invalid request body"})
		return
	}

	inv, err := h.inventoryService.Register(r.Context(), req.ID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) {
			writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: err.Error()})
			return
		}
		h.logger.ErrorContext(r.Context(), "save inventory failed",
			"request_id", w.Header().Get(requestIDHeader), "id", req.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, InventoryHTTPResponse{ID: inv.ID.String(), Name: inv.Name})
}

func (h *HTTPHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	inv, err := h.inventoryService.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorHTTPResponse{Message: "not found"})
			return
		}
		h.logger.ErrorContext(r.Context(), "lookup inventory failed",
			"request_id", w.Header().Get(requestIDHeader), "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, InventoryHTTPResponse{ID: inv.ID.String(), Name: inv.Name})
}

func (h *HTTPHandler) CountPrefix(w http.ResponseWriter, r *http.Request) {
	prefix := r.PathValue("prefix")

	n, err := h.inventoryService.CountPrefix(r.Context(), prefix)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFormat):
			writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Message: "prefix must be 2 letters"})
		case errors.Is(err, errors.ErrUnsupported):
			writeJSON(w, http.StatusNotImplemented, ErrorHTTPResponse{Message: "backend cannot count prefixes"})
		default:
			h.logger.ErrorContext(r.Context(), "count prefix failed",
				"request_id", w.Header().Get(requestIDHeader), "prefix", prefix, "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Message: "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, PrefixCountHTTPResponse{Prefix: prefix, Count: n})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WithRequestID echoes the caller's request id or assigns a new one.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
