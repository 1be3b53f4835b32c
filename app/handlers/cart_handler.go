package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render  *render.Render
	cartSvc *services.CartService
}

func NewCartHandler(r *render.Render, cartSvc *services.CartService) *CartHandler {
	return &CartHandler{render: r, cartSvc: cartSvc}
}

type addCartItemRequest struct {
	ProductID string           `json:"productId"`
	Quantity  *int             `json:"quantity"`
	Variants  []models.Variant `json:"variants"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartSvc.GetCart(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// AddItem defaults the quantity to 1 when the body leaves it out.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart, count, err := h.cartSvc.AddItem(r.Context(), currentUserID(r), req.ProductID, qty, req.Variants)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{
		"message":       "Item added to cart",
		"cart":          cart,
		"cartItemCount": count,
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	subtotal, count, err := h.cartSvc.UpdateItem(r.Context(), currentUserID(r), mux.Vars(r)["itemID"], req.Quantity)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{
		"subtotal":      subtotal,
		"cartItemCount": count,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	count, err := h.cartSvc.RemoveItem(r.Context(), currentUserID(r), mux.Vars(r)["itemID"])
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{
		"message":       "Item removed from cart",
		"cartItemCount": count,
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.Clear(r.Context(), currentUserID(r)); err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"message": "Cart cleared"})
}
