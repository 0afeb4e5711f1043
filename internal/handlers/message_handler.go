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

type MessageHandler struct {
	Service   *services.MessageService
	Orders    *services.OrderService
	Suppliers *services.SupplierService
}

func NewMessageHandler(s *services.MessageService, orders *services.OrderService, suppliers *services.SupplierService) *MessageHandler {
	return &MessageHandler{Service: s, Orders: orders, Suppliers: suppliers}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.Service.Send(r.Context(), senderID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, msg)
}

// Conversation lists the two-way thread between the caller and another user.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	otherID, err := strconv.Atoi(mux.Vars(r)["userID"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages, err := h.Service.Conversation(r.Context(), userID, otherID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}
	utils.JSON(w, http.StatusOK, messages)
}

// ByOrder lists an order's message thread, visible only to the order's
// parties and admins.
func (h *MessageHandler) ByOrder(w http.ResponseWriter, r *http.Request) {
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

	messages, err := h.Service.ByOrder(r.Context(), orderID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}
	utils.JSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	if err := h.Service.MarkRead(r.Context(), id, userID); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
