// Package middleware holds the cross-cutting HTTP wrappers applied to every
// route: request ids, access logging, panic recovery, rate limiting, and
// Prometheus metrics.
//
// Each middleware has the shape func(http.HandlerFunc) http.HandlerFunc and
// is applied per route (see Chain) so that r.Pattern is already set by the
// ServeMux when the wrappers run.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aanand-mishra/students-api/internal/utils/response"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Func is a single middleware layer.
type Func func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h so that mws[0] is the outermost layer.
func Chain(h http.HandlerFunc, mws ...Func) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type contextKey string

const contextKeyRequestID contextKey = "requestID"

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-Id"

// RequestIDFromContext returns the id stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// RequestID reuses a valid UUID from the X-Request-Id header or generates
// a new one, stores it in the context, and echoes it back.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		w.Header().Set(HeaderRequestID, requestID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Logging writes one structured line per completed request.
func Logging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		slog.Info("request completed",
			slog.String("requestID", RequestIDFromContext(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rw.Status()),
			slog.String("duration", time.Since(start).String()),
		)
	}
}

// Recover turns a panic inside a handler into a 500 response.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				panicRecoveries.Inc()
				slog.Error("panic recovered",
					slog.String("error", fmt.Sprint(v)),
					slog.String("requestID", RequestIDFromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
				)
				response.WriteJSON(w, http.StatusInternalServerError,
					response.GeneralError(errors.New("internal server error")))
			}
		}()
		next.ServeHTTP(w, r)
	}
}

// RateLimit rejects requests with 429 once limiter runs out of tokens.
// The same limiter is shared by every route it wraps.
func RateLimit(limiter *rate.Limiter) Func {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				rateLimitRejects.Inc()
				w.Header().Set("Retry-After", "1")
				response.WriteJSON(w, http.StatusTooManyRequests,
					response.GeneralError(errors.New("rate limit exceeded")))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(limiter.Limit())))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

			next.ServeHTTP(w, r)
		}
	}
}
