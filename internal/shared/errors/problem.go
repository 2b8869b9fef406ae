// Package errors renders RFC 7807 problem details for the storefront API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem response body.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property. The
// receiver's map is never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type URI references.
const (
	TypeValidation      = "/problems/validation-error"
	TypeBadRequest      = "/problems/bad-request"
	TypeNotFound        = "/problems/not-found"
	TypeInvalidQuantity = "/problems/invalid-quantity"
	TypeInvalidVariant  = "/problems/invalid-variant"
	TypeInvalidShopper  = "/problems/invalid-shopper"
	TypeUnavailable     = "/problems/service-unavailable"
	TypeInternal        = "/problems/internal-error"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrInvalidQuantity rejects cart lines below one unit.
	ErrInvalidQuantity = ProblemDetail{
		Type:   TypeInvalidQuantity,
		Title:  "Invalid Quantity",
		Status: http.StatusBadRequest,
	}

	// ErrInvalidVariant rejects sizes or colors the product is not offered in.
	ErrInvalidVariant = ProblemDetail{
		Type:   TypeInvalidVariant,
		Title:  "Invalid Variant",
		Status: http.StatusBadRequest,
	}

	ErrInvalidShopper = ProblemDetail{
		Type:   TypeInvalidShopper,
		Title:  "Invalid Shopper",
		Status: http.StatusBadRequest,
	}

	ErrUnavailable = ProblemDetail{
		Type:   TypeUnavailable,
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem creates a validation error with field-level details.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}
