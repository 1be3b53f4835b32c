package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	render      *render.Render
	wishlistSvc *services.WishlistService
}

func NewWishlistHandler(r *render.Render, wishlistSvc *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{render: r, wishlistSvc: wishlistSvc}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlistSvc.List(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"wishlist": products})
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlistSvc.Add(r.Context(), currentUserID(r), mux.Vars(r)["productID"]); err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"message": "Added to wishlist"})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlistSvc.Remove(r.Context(), currentUserID(r), mux.Vars(r)["productID"]); err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"message": "Removed from wishlist"})
}
