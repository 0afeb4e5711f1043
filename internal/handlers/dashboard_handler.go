package handlers

import (
	"net/http"

	"stitch-backend/internal/middleware"
	"stitch-backend/internal/services"
	"stitch-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) Buyer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dash, err := h.Service.BuyerDashboard(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	utils.JSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.AdminDashboard(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	utils.JSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Funnel(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.FunnelStats(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load funnel stats")
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Leads(w http.ResponseWriter, r *http.Request) {
	board, err := h.Service.LeadBoard(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load lead board")
		return
	}
	utils.JSON(w, http.StatusOK, board)
}
