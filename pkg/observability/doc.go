// Package observability provides the service's structured logging,
// Prometheus metrics, health probes, OpenTelemetry setup and graceful
// shutdown handling.
//
// Logging uses stdlib slog with a JSON handler so log lines are machine
// parseable. Metrics cover the HTTP surface plus the validation domain:
// how many tasks were validated per device and outcome, and how many
// violations each category produced. Health probes distinguish liveness
// (process is up) from readiness (history database and result cache are
// reachable).
package observability
