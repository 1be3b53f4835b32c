package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
	"github.com/unrolled/render"
)

// SessionAuth copies the signed-in user from the session cookie into the
// request context. Anonymous requests pass through untouched.
func SessionAuth(store sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, role := store.GetUser(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), userID, role)))
		})
	}
}

func RequireAuth(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := helpers.GetUserIDFromContext(r.Context()); !ok {
				helpers.WriteError(rnd, w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type CartCounter interface {
	CartItemCount(ctx context.Context, userID string) (int, error)
}

// CartCount puts the signed-in user's cart item count in the context.
func CartCount(counter CartCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := helpers.GetUserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			count, err := counter.CartItemCount(r.Context(), userID)
			if err != nil {
				log.Printf("CartCountMiddleware: Error getting cart item count for user %s: %v", userID, err)
				count = 0
			}

			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
