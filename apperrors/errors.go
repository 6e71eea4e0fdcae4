package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for propagation policy purposes.
type Kind int

const (
	// KindValidation is a local precondition failure; it never reaches
	// the network.
	KindValidation Kind = iota
	// KindAuthorization is an unauthorized response from the backend;
	// it is additionally handled by the global session handler.
	KindAuthorization
	// KindBackend is any other non-success backend response.
	KindBackend
	// KindTransport is a network failure, timeout or unreachable backend.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindBackend:
		return "backend"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Validation creates a local precondition error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusBadRequest, Message: message}
}

// Authorization creates an error for an unauthorized backend response.
func Authorization(message string, err error) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindAuthorization, Code: http.StatusUnauthorized, Message: message, Err: err}
}

// Backend creates an error for a non-success backend response. The
// message should be the backend-provided one when present.
func Backend(code int, message string, err error) *Error {
	if message == "" {
		message = "Request failed"
	}
	return &Error{Kind: KindBackend, Code: code, Message: message, Err: err}
}

// Transport creates an error for a network-level failure.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Code: http.StatusBadGateway, Message: "Service unreachable", Err: err}
}

// Common validation errors surfaced by the engine.
var (
	ErrEmptyCart          = Validation("Cart is empty")
	ErrIncompleteAddress  = Validation("All shipping address fields are required")
	ErrUnauthenticated    = Validation("Not authenticated")
	ErrPasswordMismatch   = Validation("Passwords do not match")
	ErrPasswordTooShort   = Validation("Password must be at least 6 characters")
	ErrCheckoutInFlight   = Validation("A checkout is already in progress")
	ErrInvalidCredentials = Authorization("Invalid email or password", nil)
)

// From coerces any error into an *Error, wrapping unknown kinds as
// transport failures.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Transport(err)
}

// KindOf reports the Kind of err, or KindTransport for foreign errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// ErrorMiddleware renders errors attached to the gin context as JSON.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			appErr := From(c.Errors.Last().Err)
			c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind.String()})
			c.Abort()
		}
	}
}
