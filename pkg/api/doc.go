// Package api exposes task validation over HTTP.
//
// Routes:
//
//	POST /api/v1/validate                  validate an inline task, optionally
//	                                       against inline capabilities
//	GET  /api/v1/devices                   list device profile names
//	GET  /api/v1/devices/{name}            dump one profile
//	POST /api/v1/devices/{name}/validate   validate a task against a profile
//	GET  /api/v1/history                   query past validation runs
//	GET  /api/v1/history/stats             aggregate run statistics
//
// A validation that completes always returns 200 with the full report, valid
// or not; 4xx is reserved for malformed requests and unknown profiles.
package api
