package binder

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying the parsed form.
func WithContext(ctx context.Context, form *Form) context.Context {
	return context.WithValue(ctx, contextKey{}, form)
}

// FromContext extracts the form stored by the middleware. Returns nil when
// the request was not multipart or the middleware did not run.
func FromContext(ctx context.Context) *Form {
	if ctx == nil {
		return nil
	}
	form, ok := ctx.Value(contextKey{}).(*Form)
	if !ok {
		return nil
	}
	return form
}

// Middleware parses multipart/form-data request bodies and stores the merged
// Form in the request context for downstream handlers. Requests with any
// other media type pass through untouched.
//
// Rejections: 400 for unparsable bodies and missing boundaries, 413 when the
// body exceeds the configured limit, 500 when a configured storage backend
// fails. Failures are reported through the logger set with WithLogger.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				next.ServeHTTP(w, r)
				return
			}

			form, err := parseRequest(r, cfg)
			if err != nil {
				status := http.StatusBadRequest
				switch {
				case errors.Is(err, ErrBodyTooLarge):
					status = http.StatusRequestEntityTooLarge
				case errors.Is(err, ErrFailedToStoreFile):
					status = http.StatusInternalServerError
				}

				if cfg.logger != nil {
					cfg.logger.ErrorContext(r.Context(), "multipart form rejected",
						"error", err,
						"status", status,
						"path", r.URL.Path,
					)
				}

				http.Error(w, http.StatusText(status), status)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), form)))
		})
	}
}
