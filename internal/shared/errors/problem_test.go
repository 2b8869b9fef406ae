package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	p := ErrInvalidQuantity.WithExtension("quantity", 0)
	assert.Nil(t, ErrInvalidQuantity.Extensions)
	assert.Equal(t, 0, p.Extensions["quantity"])

	q := p.WithExtension("productId", "1")
	assert.Len(t, p.Extensions, 1)
	assert.Len(t, q.Extensions, 2)
}

func TestResponder_UsesMappersThenFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sentinel := errors.New("quantity must be at least 1")
	responder := NewResponder(WithMappers(func(err error) (ProblemDetail, bool) {
		if errors.Is(err, sentinel) {
			return ErrInvalidQuantity.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	}))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPatch, "/v1/cart/items", nil)
	responder.RespondError(c, fmt.Errorf("wrapped: %w", sentinel))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeInvalidQuantity, body.Type)
	assert.Equal(t, "/v1/cart/items", body.Instance)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	responder.RespondError(c, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestResponder_AddsTraceIDAndRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	traceID, err := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := oteltrace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cart", nil).WithContext(ctx)
	NewResponder(WithBaseURI("https://storefront.example")).Respond(c, ErrUnavailable.WithDetail("session storage unavailable"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://storefront.example"+TypeUnavailable, body.Type)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", body.Extensions["traceId"])
	assert.Nil(t, ErrUnavailable.Extensions)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	NewResponder().BadRequest(c, "malformed body")
	assert.Empty(t, rec.Header().Get("Retry-After"))
	var plain ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plain))
	assert.NotContains(t, plain.Extensions, "traceId")
}
