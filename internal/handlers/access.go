package handlers

import (
	"net/http"

	"stitch-backend/internal/middleware"
	"stitch-backend/internal/models"
	"stitch-backend/internal/services"
)

// canAccessOrder reports whether the caller may act on the order. Admins see
// everything, buyers their own orders, suppliers the orders assigned to
// their supplier profile. orders.supplier_id holds a suppliers-table id, so
// a supplier account is resolved to its profile before comparing.
func canAccessOrder(r *http.Request, order *models.Order, suppliers *services.SupplierService) bool {
	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return false
	}
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleSupplier:
		if order.SupplierID == nil || suppliers == nil {
			return false
		}
		sup, err := suppliers.ForUser(r.Context(), userID)
		if err != nil {
			return false
		}
		return *order.SupplierID == sup.ID
	default:
		return order.BuyerID == userID
	}
}
