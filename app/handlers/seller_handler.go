package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type SellerHandler struct {
	render     *render.Render
	productSvc *services.ProductService
	orderSvc   *services.OrderService
}

func NewSellerHandler(r *render.Render, productSvc *services.ProductService, orderSvc *services.OrderService) *SellerHandler {
	return &SellerHandler{render: r, productSvc: productSvc, orderSvc: orderSvc}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *SellerHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListSellerProducts(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *SellerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := DecodeJSON(w, r, &input); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), currentUserID(r), input)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusCreated, map[string]interface{}{"product": product})
}

func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := DecodeJSON(w, r, &input); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), currentUserID(r), mux.Vars(r)["id"], input)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"product": product})
}

func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productSvc.DeleteProduct(r.Context(), currentUserID(r), mux.Vars(r)["id"]); err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"message": "Product deleted"})
}

func (h *SellerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListSellerOrders(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *SellerHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	orderID := mux.Vars(r)["id"]

	var order *models.Order
	var err error
	if helpers.GetUserRoleFromContext(r.Context()) == models.RoleAdmin {
		order, err = h.orderSvc.UpdateStatus(r.Context(), orderID, req.Status, req.Note)
	} else {
		order, err = h.orderSvc.UpdateSellerOrderStatus(r.Context(), currentUserID(r), orderID, req.Status, req.Note)
	}
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"order": order})
}

func (h *SellerHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.productSvc.SellerReport(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"report": report})
}
