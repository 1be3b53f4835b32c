package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/handlers"
	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
}

func NewAdminHandler(r *render.Render, orderSvc *services.OrderService) *AdminHandler {
	return &AdminHandler{render: r, orderSvc: orderSvc}
}

type orderStatusForm struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *AdminHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListAllOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		helpers.WriteError(h.render, w, handlers.StatusFor(err), "Failed to load orders", nil)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var form orderStatusForm
	if err := handlers.DecodeJSON(w, r, &form); err != nil || form.Status == "" {
		helpers.WriteError(h.render, w, http.StatusBadRequest, "Order status is required", nil)
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), orderID, form.Status, form.Note)
	if err != nil {
		log.Printf("AdminHandler.UpdateOrderStatus: failed to move order %s to %s: %v", orderID, form.Status, err)
		handlers.WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"order": order})
}
