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

type PaymentHandler struct {
	Service *services.PaymentService
	Orders  *services.OrderService
}

func NewPaymentHandler(s *services.PaymentService, orders *services.OrderService) *PaymentHandler {
	return &PaymentHandler{Service: s, Orders: orders}
}

// CreateDeposit opens a payment order for an order's production deposit.
// Deposits are the buyer's payment, so only the order's buyer or an admin
// may open one.
func (h *PaymentHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
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
	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if role != models.RoleAdmin && order.BuyerID != userID {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	txn, err := h.Service.CreateDeposit(r.Context(), orderID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, txn)
}

// VerifyDeposit confirms the checkout callback from Razorpay.
func (h *PaymentHandler) VerifyDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.VerifyDeposit(r.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "paid"})
}
