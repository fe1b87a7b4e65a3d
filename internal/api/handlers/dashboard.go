package handlers

import (
	"net/http"

	"github.com/kosbot/kosbot-api/internal/domain/dashboard"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

// DashboardHandler serves the derived dashboard figures
type DashboardHandler struct {
	service dashboard.Service
	logger  *logger.Logger
}

func NewDashboardHandler(service dashboard.Service, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}
	overview, err := h.service.Overview(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load dashboard overview")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, overview)
}

func (h *DashboardHandler) QuickStats(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}
	stats, err := h.service.QuickStats(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load quick stats")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}
	tasks, err := h.service.Tasks(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load tasks")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, tasks)
}

func (h *DashboardHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}
	series, err := h.service.Revenue(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load revenue")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, series)
}
