package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDuplicateReview   = errors.New("you have already reviewed this product")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidLogin      = errors.New("invalid email or password")
	ErrPersistence       = errors.New("persistence failure")
)

// Error is returned by every service operation that fails for a reason the
// caller can report back. Kind is one of the Err* sentinels above, so callers
// match with errors.Is and read details with errors.As.
type Error struct {
	Kind        error
	Message     string
	ProductID   string
	ProductName string
	Fields      map[string]string
	Err         error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func notFound(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func insufficientStock(productID, productName string, available, requested int) *Error {
	return &Error{
		Kind:        ErrInsufficientStock,
		Message:     fmt.Sprintf("Insufficient stock for %s (available: %d, requested: %d)", productName, available, requested),
		ProductID:   productID,
		ProductName: productName,
	}
}

func emptyCart() *Error {
	return &Error{Kind: ErrEmptyCart, Message: "Cart is empty"}
}

func duplicateReview() *Error {
	return &Error{Kind: ErrDuplicateReview, Message: "You have already reviewed this product"}
}

func validationError(fields map[string]string) *Error {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	msg := "Validation failed"
	if len(parts) > 0 {
		msg = strings.Join(parts, "; ")
	}
	return &Error{Kind: ErrValidation, Message: msg, Fields: fields}
}

func invalid(field, msg string) *Error {
	return validationError(map[string]string{field: msg})
}

func invalidLogin() *Error {
	return &Error{Kind: ErrInvalidLogin, Message: "Invalid email or password"}
}

func persistence(op string, err error) *Error {
	return &Error{Kind: ErrPersistence, Message: "failed to " + op, Err: err}
}
