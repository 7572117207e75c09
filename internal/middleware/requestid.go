// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package middleware provides HTTP middleware shared across the router:
// request ID propagation and Prometheus instrumentation.
package middleware

import (
	"net/http"

	"github.com/inkwell-hq/inkwell/internal/logging"
)

// RequestID assigns each request a unique ID, exposed in the X-Request-ID
// response header and the logging context. An ID supplied by an upstream
// proxy is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
