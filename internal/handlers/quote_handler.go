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

type QuoteHandler struct {
	Service *services.QuoteService
	Reports *services.ReportService
}

func NewQuoteHandler(s *services.QuoteService, reports *services.ReportService) *QuoteHandler {
	return &QuoteHandler{Service: s, Reports: reports}
}

// Create accepts the public quote form. Authenticated buyers get the quote
// attached to their account; anonymous submissions are kept as leads.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var buyerID *int
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		buyerID = &id
	}

	quote, err := h.Service.Create(r.Context(), &req, buyerID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, quote)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Quote not found")
		return
	}
	if !h.canAccess(r, quote) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	utils.JSON(w, http.StatusOK, quote)
}

// List returns quotes filtered by query parameters. Buyers only ever see
// their own; admins see everything.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.QuoteFilter{
		Status:      r.URL.Query().Get("status"),
		ProductType: r.URL.Query().Get("product_type"),
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		if buyer := r.URL.Query().Get("buyer_id"); buyer != "" {
			if id, err := strconv.Atoi(buyer); err == nil {
				filter.BuyerID = id
			}
		}
	} else {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		filter.BuyerID = userID
	}

	quotes, err := h.Service.List(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}
	utils.JSON(w, http.StatusOK, quotes)
}

func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	var req models.UpdateQuoteStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote, err := h.Service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, quote)
}

// Convert turns a quote into an order. Only the owning buyer or an admin
// may convert; the resulting order is billed to the quote's buyer.
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Quote not found")
		return
	}
	if !h.canAccess(r, quote) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	order, err := h.Service.Convert(r.Context(), id, userID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

// PDF streams a printable rendering of the quote.
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Quote not found")
		return
	}
	if !h.canAccess(r, quote) {
		utils.Error(w, http.StatusForbidden, "Forbidden")
		return
	}

	pdf, err := h.Reports.QuotePDF(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render quote")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+quote.QuoteNumber+".pdf")
	w.Write(pdf)
}

func (h *QuoteHandler) canAccess(r *http.Request, quote *models.Quote) bool {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleAdmin {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && quote.BuyerID != nil && *quote.BuyerID == userID
}
