package middlewares

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/unrolled/render"
)

// RequireRole admits users whose stored role is one of roles. The role is
// read from the database so a demotion applies to existing sessions.
func RequireRole(rnd *render.Render, userRepo repositories.UserRepositoryImpl, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := helpers.GetUserIDFromContext(r.Context())
			if !ok {
				helpers.WriteError(rnd, w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			user, err := userRepo.FindByID(r.Context(), nil, userID)
			if err != nil {
				log.Printf("RoleMiddleware: Error finding user %s: %v", userID, err)
				helpers.WriteError(rnd, w, http.StatusInternalServerError, "Failed to load user", nil)
				return
			}
			if user == nil {
				helpers.WriteError(rnd, w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			if !allowed[user.Role] {
				log.Printf("RoleMiddleware: User %s (%s) with role %q denied %s", user.ID, user.Email, user.Role, r.URL.Path)
				helpers.WriteError(rnd, w, http.StatusForbidden, "You do not have permission to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user.ID, user.Role)))
		})
	}
}
