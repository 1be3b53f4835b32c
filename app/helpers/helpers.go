package helpers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID   contextKey = "userID"
	ContextKeyUserRole contextKey = "userRole"
	CartCountKey       contextKey = "cart_count"
)

func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, userID)
	return context.WithValue(ctx, ContextKeyUserRole, role)
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok && userID != ""
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ContextKeyUserRole).(string)
	return role
}

func GetCartCount(r *http.Request) int {
	count, _ := r.Context().Value(CartCountKey).(int)
	return count
}

// FormatValidationErrors keys messages by the field's JSON name.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "url":
			errorMessages[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation", field, err.Tag())
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("HashPassword: error hashing password: %v", err)
		return ""
	}
	return string(bytes)
}
