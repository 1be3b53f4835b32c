package helpers

import (
	"net/http"

	"github.com/unrolled/render"
)

type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func WriteError(rnd *render.Render, w http.ResponseWriter, status int, message string, fields map[string]string) {
	_ = rnd.JSON(w, status, ErrorResponse{Success: false, Message: message, Errors: fields})
}

// WriteSuccess merges payload into a {"success": true} envelope.
func WriteSuccess(rnd *render.Render, w http.ResponseWriter, status int, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	_ = rnd.JSON(w, status, body)
}
