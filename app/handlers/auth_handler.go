package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	authSvc      *services.AuthService
	sessionStore sessions.SessionStore
}

func NewAuthHandler(r *render.Render, authSvc *services.AuthService, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{
		render:       r,
		authSvc:      authSvc,
		sessionStore: sessionStore,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := DecodeJSON(w, r, &input); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	user, err := h.authSvc.Register(r.Context(), input)
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}

	if err := h.sessionStore.SetUser(w, r, user.ID, user.Role); err != nil {
		log.Printf("AuthHandler.Register: Error setting user session for %s: %v", user.ID, err)
	}
	helpers.WriteSuccess(h.render, w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(h.render, w, err)
		return
	}

	user, err := h.authSvc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("AuthHandler.Login: login failed for %s: %v", req.Email, err)
		WriteServiceError(h.render, w, err)
		return
	}

	if err := h.sessionStore.SetUser(w, r, user.ID, user.Role); err != nil {
		log.Printf("AuthHandler.Login: Error setting user session: %v", err)
		helpers.WriteError(h.render, w, http.StatusInternalServerError, "Failed to create session", nil)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: Error clearing session: %v", err)
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.GetUser(r.Context(), currentUserID(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{
		"user":          user,
		"cartItemCount": helpers.GetCartCount(r),
	})
}
