package errors

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// RetryAfterUnavailable is advertised on 503 problems. Sessions that failed to
// load are retried from storage on the next request.
const RetryAfterUnavailable = 2 * time.Second

// ErrorMapper turns an error it recognises into a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes storefront problem responses. Mapped errors keep their
// detail; anything else becomes an opaque 500 that is logged with the trace id
// the client sees in the body.
type Responder struct {
	baseURI string
	logger  *slog.Logger
	mappers []ErrorMapper
}

type ResponderOption func(*Responder)

// WithBaseURI is prepended to relative problem type URIs.
func WithBaseURI(uri string) ResponderOption {
	return func(r *Responder) {
		r.baseURI = uri
	}
}

func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		r.logger = logger
	}
}

// WithMappers appends mappers; the first that matches wins.
func WithMappers(mappers ...ErrorMapper) ResponderOption {
	return func(r *Responder) {
		r.mappers = append(r.mappers, mappers...)
	}
}

func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Respond writes problem with the request path as instance and, when the
// request is traced, the trace id as an extension.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if traceID := requestTraceID(c); traceID != "" {
		problem = problem.WithExtension("traceId", traceID)
	}
	if problem.Status == ErrUnavailable.Status {
		c.Header("Retry-After", strconv.Itoa(int(RetryAfterUnavailable/time.Second)))
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError writes err as a problem: problems pass through, then mappers are
// tried in order, then the 500 fallback.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	_ = c.Error(err)
	r.log().LogAttrs(c.Request.Context(), slog.LevelError, "unmapped request error",
		slog.String("http.method", c.Request.Method),
		slog.String("http.path", c.Request.URL.Path),
		slog.String("trace.id", requestTraceID(c)),
		slog.String("error", err.Error()))
	r.Respond(c, ErrInternal.WithDetail("unexpected error"))
}

// BadRequest sends a 400 for a body or query that could not be bound.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ValidationFailed sends a 400 with field errors.
func (r *Responder) ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	r.Respond(c, NewValidationProblem(fieldErrors))
}

func (r *Responder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

func requestTraceID(c *gin.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(c.Request.Context())
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
