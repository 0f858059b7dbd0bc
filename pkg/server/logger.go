package server

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDHeader carries the request ID to and from clients.
const RequestIDHeader = "X-Request-ID"

// WithRequestID stores id in ctx for RequestLogHandler.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLogHandler is a slog.Handler that adds the request_id found in the
// record's context before passing it on.
type RequestLogHandler struct {
	next slog.Handler
}

func NewRequestLogHandler(next slog.Handler) *RequestLogHandler {
	return &RequestLogHandler{next: next}
}

func (h *RequestLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RequestLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r = r.Clone()
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.next.Handle(ctx, r)
}

func (h *RequestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestLogHandler{next: h.next.WithAttrs(attrs)}
}

func (h *RequestLogHandler) WithGroup(name string) slog.Handler {
	return &RequestLogHandler{next: h.next.WithGroup(name)}
}

// requestIDMiddleware reuses an incoming X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
