// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, report)
//
// Error responses:
//
//	httputil.WriteBadRequest(w, "invalid task document")
//	httputil.WriteNotFound(w, "unknown device profile")
//	httputil.WriteInternalError(w, err)
//
// # Request Parsing
//
//	var req ValidateRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // error response already written
//	}
//
//	name, ok := httputil.ParsePathStringOrError(w, r, "name")
//	limit, err := httputil.ParseQueryInt(r, "limit", 50)
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.MaxBytesMiddleware(4*1024*1024),
//	)
package httputil
