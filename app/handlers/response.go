package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/unrolled/render"
)

const maxBodyBytes = 1 << 20

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, services.ErrDuplicateReview):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidLogin):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func WriteServiceError(rnd *render.Render, w http.ResponseWriter, err error) {
	status := StatusFor(err)

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		helpers.WriteError(rnd, w, status, "Internal server error", nil)
		return
	}
	// Message never carries the wrapped storage error.
	helpers.WriteError(rnd, w, status, svcErr.Message, svcErr.Fields)
}

func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

func writeBadRequest(rnd *render.Render, w http.ResponseWriter, err error) {
	helpers.WriteError(rnd, w, http.StatusBadRequest, err.Error(), nil)
}

// currentUserID is only called behind RequireAuth.
func currentUserID(r *http.Request) string {
	userID, _ := helpers.GetUserIDFromContext(r.Context())
	return userID
}
