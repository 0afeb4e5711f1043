package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stitch-backend/internal/middleware"
	"stitch-backend/internal/models"
	"stitch-backend/internal/services"
	"stitch-backend/pkg/utils"
)

type OrderHandler struct {
	Service   *services.OrderService
	Suppliers *services.SupplierService
}

func NewOrderHandler(s *services.OrderService, suppliers *services.SupplierService) *OrderHandler {
	return &OrderHandler{Service: s, Suppliers: suppliers}
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canAccessOrder(r, order, h.Suppliers) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// List scopes results by role: buyers see their orders, suppliers their
// assignments, admins everything.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.OrderFilter{Status: r.URL.Query().Get("status")}

	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	switch role {
	case models.RoleAdmin:
		if buyer := r.URL.Query().Get("buyer_id"); buyer != "" {
			if id, err := strconv.Atoi(buyer); err == nil {
				filter.BuyerID = id
			}
		}
		if supplier := r.URL.Query().Get("supplier_id"); supplier != "" {
			if id, err := strconv.Atoi(supplier); err == nil {
				filter.SupplierID = id
			}
		}
	case models.RoleSupplier:
		// Assignments key on the suppliers-table id, not the account id.
		sup, err := h.Suppliers.ForUser(r.Context(), userID)
		if err != nil {
			utils.JSON(w, http.StatusOK, []*models.Order{})
			return
		}
		filter.SupplierID = sup.ID
	default:
		filter.BuyerID = userID
	}

	orders, err := h.Service.List(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	current, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canAccessOrder(r, current, h.Suppliers) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) AssignSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req models.AssignSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Service.AssignSupplier(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// MatchSuppliers lists suppliers able to take the order.
func (h *OrderHandler) MatchSuppliers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}

	matched, err := h.Suppliers.MatchForOrder(r.Context(), order)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to match suppliers")
		return
	}
	utils.JSON(w, http.StatusOK, matched)
}

// Progress returns per-stage completion and the overall percentage.
func (h *OrderHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canAccessOrder(r, order, h.Suppliers) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	progress, err := h.Service.Progress(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to compute progress")
		return
	}
	utils.JSON(w, http.StatusOK, progress)
}
