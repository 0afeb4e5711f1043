package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stitch-backend/internal/models"
	"stitch-backend/internal/services"
	"stitch-backend/pkg/utils"
)

type ProductionHandler struct {
	Service   *services.ProductionService
	Orders    *services.OrderService
	Suppliers *services.SupplierService
}

func NewProductionHandler(s *services.ProductionService, orders *services.OrderService, suppliers *services.SupplierService) *ProductionHandler {
	return &ProductionHandler{Service: s, Orders: orders, Suppliers: suppliers}
}

// CreateStage adds a stage to an order. Suppliers may only touch orders
// assigned to them.
func (h *ProductionHandler) CreateStage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Orders.Get(r.Context(), req.OrderID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canAccessOrder(r, order, h.Suppliers) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	stage, err := h.Service.CreateStage(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, stage)
}

func (h *ProductionHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["orderID"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canAccessOrder(r, order, h.Suppliers) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	stages, err := h.Service.ListStages(r.Context(), orderID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list stages")
		return
	}
	utils.JSON(w, http.StatusOK, stages)
}

func (h *ProductionHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid stage ID")
		return
	}

	stage, err := h.Service.GetStage(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Stage not found")
		return
	}
	order, err := h.Orders.Get(r.Context(), stage.OrderID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canAccessOrder(r, order, h.Suppliers) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req models.UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.UpdateStage(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}
