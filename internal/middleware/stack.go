// Package middleware provides HTTP middleware for the Savant server.
package middleware

import "net/http"

// Stack composes middleware into one.
//
// Middleware is applied in the order provided, meaning the first middleware
// in the slice is the outermost (runs first on request, last on response).
//
// Example:
//
//	stack := Stack(requestID.Handler, logging.Handler, security.Handler)
//	handler := stack(mux)
//
// This is equivalent to:
//
//	requestID.Handler(logging.Handler(security.Handler(mux)))
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
