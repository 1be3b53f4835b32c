package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ReviewHandler struct {
	render    *render.Render
	reviewSvc *services.ReviewService
}

func NewReviewHandler(r *render.Render, reviewSvc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{render: r, reviewSvc: reviewSvc}
}

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input services.AddReviewInput
	if err := DecodeJSON(w, r, &input); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	review, err := h.reviewSvc.AddReview(r.Context(), currentUserID(r), input)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusCreated, map[string]interface{}{
		"message": "Review added successfully",
		"review":  review,
	})
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviewSvc.MarkHelpful(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"helpful": review.Helpful})
}
