package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frontdeskai/webchat-service/internal/observability/metrics"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

// Handler handles HTTP requests for leads
type Handler struct {
	repo    Repository
	logger  *logging.Logger
	metrics *metrics.LeadsMetrics
}

// NewHandler creates a new leads handler. metrics may be nil.
func NewHandler(repo Repository, logger *logging.Logger, m *metrics.LeadsMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// CreateLeadResponse is the wire shape for lead creation.
type CreateLeadResponse struct {
	Success bool       `json:"success"`
	Lead    *Lead      `json:"lead,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a user-presentable failure message.
type ErrorBody struct {
	Message string `json:"message"`
}

// CreateLead handles POST /leads requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("leads: failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, CreateLeadResponse{
			Success: false,
			Error:   &ErrorBody{Message: "invalid request body"},
		})
		return
	}
	if req.Source == "" {
		req.Source = SourceChatWidget
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("leads: failed to create lead", "error", err)
		h.metrics.ObserveCreated("invalid", req.Source)
		writeJSON(w, http.StatusBadRequest, CreateLeadResponse{
			Success: false,
			Error:   &ErrorBody{Message: err.Error()},
		})
		return
	}

	h.logger.Info("leads: lead created", "id", lead.ID, "source", lead.Source)
	h.metrics.ObserveCreated("created", lead.Source)
	writeJSON(w, http.StatusCreated, CreateLeadResponse{Success: true, Lead: lead})
}

// GetLead handles GET /leads/{id} requests
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing lead id", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		h.logger.Error("leads: failed to fetch lead", "error", err, "id", id)
		http.Error(w, "failed to fetch lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
