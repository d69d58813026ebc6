// Package history persists one record per validation run: which device
// profile was targeted, a content hash of the task, the outcome, and the
// per-category violation counts. Records back the /api/v1/history endpoint
// and the retention job that prunes old rows.
//
// The DBRecorder works against PostgreSQL or SQLite through database/sql.
// Deployments that run without a database use NopRecorder.
package history
