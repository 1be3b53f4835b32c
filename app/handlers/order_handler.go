package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
}

func NewOrderHandler(r *render.Render, orderSvc *services.OrderService) *OrderHandler {
	return &OrderHandler{render: r, orderSvc: orderSvc}
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var input services.PlaceOrderInput
	if err := DecodeJSON(w, r, &input); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	order, err := h.orderSvc.PlaceOrder(r.Context(), currentUserID(r), input)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusCreated, map[string]interface{}{
		"message":     "Order placed successfully",
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"order":       order,
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListOrders(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.GetOrder(r.Context(), currentUserID(r), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"order": order})
}

func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.orderSvc.Receipt(r.Context(), currentUserID(r), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	_ = h.render.Text(w, http.StatusOK, receipt)
}
