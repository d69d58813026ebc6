package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openqpu/pulsecheck/pkg/cache"
	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/history"
	"github.com/openqpu/pulsecheck/pkg/httputil"
	"github.com/openqpu/pulsecheck/pkg/observability"
	"github.com/openqpu/pulsecheck/pkg/task"
	"github.com/openqpu/pulsecheck/pkg/validator"
)

// ValidateRequest is the body of both validation endpoints. Capabilities is
// honored only on the inline endpoint; the per-device endpoint takes its
// limits from the named profile.
type ValidateRequest struct {
	Task         json.RawMessage `json:"task"`
	Capabilities json.RawMessage `json:"capabilities,omitempty"`
}

// ValidateResponse carries the full report for one validation run.
type ValidateResponse struct {
	Device     string            `json:"device"`
	TaskHash   string            `json:"task_hash"`
	Valid      bool              `json:"valid"`
	Violations int               `json:"violations"`
	Cached     bool              `json:"cached"`
	Report     *validator.Report `json:"report"`
}

// validateInline handles POST /api/v1/validate
func (s *Server) validateInline(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if len(req.Task) == 0 {
		httputil.WriteBadRequest(w, "task is required")
		return
	}

	spec, err := task.Parse(req.Task)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	caps := device.Default()
	if len(req.Capabilities) > 0 {
		caps = &device.Capabilities{}
		if err := json.Unmarshal(req.Capabilities, caps); err != nil {
			httputil.WriteBadRequest(w, "invalid capabilities: "+err.Error())
			return
		}
		if caps.Name == "" {
			caps.Name = "inline"
		}
		if err := caps.Check(); err != nil {
			httputil.WriteBadRequest(w, "invalid capabilities: "+err.Error())
			return
		}
	}

	// Inline capabilities bypass the cache: the key covers only the task
	// and the profile name, which an ad hoc document does not have.
	resp := s.runValidation(r.Context(), spec, caps, false)
	httputil.WriteSuccess(w, resp)
}

// validateAgainstDevice handles POST /api/v1/devices/{name}/validate
func (s *Server) validateAgainstDevice(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}
	caps, found := s.registry.Get(name)
	if !found {
		httputil.WriteNotFound(w, "unknown device profile: "+name)
		return
	}

	var req ValidateRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if len(req.Task) == 0 {
		httputil.WriteBadRequest(w, "task is required")
		return
	}

	spec, err := task.Parse(req.Task)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	resp := s.runValidation(r.Context(), spec, caps, true)
	httputil.WriteSuccess(w, resp)
}

// runValidation validates the task, consulting the result cache when allowed
// and recording the run in history.
func (s *Server) runValidation(ctx context.Context, spec *task.Spec, caps *device.Capabilities, cacheable bool) *ValidateResponse {
	key, err := cache.Key(spec, caps.Name)
	if err != nil {
		// Hashing failure only costs the cache and the history hash.
		s.logger.WithError(err).Warn("Failed to compute task hash")
	}

	if cacheable && s.cache != nil && key != "" {
		report, cacheErr := s.cache.Get(ctx, key)
		if cacheErr == nil {
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.WithLabelValues(cacheBackendLabel(s.cache)).Inc()
			}
			return &ValidateResponse{
				Device:     caps.Name,
				TaskHash:   key,
				Valid:      report.Valid(),
				Violations: report.Total(),
				Cached:     true,
				Report:     report,
			}
		}
		if !errors.Is(cacheErr, cache.ErrCacheMiss) {
			s.logger.WithError(cacheErr).Warn("Result cache lookup failed")
		}
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.WithLabelValues(cacheBackendLabel(s.cache)).Inc()
		}
	}

	start := time.Now()
	report := validator.Validate(spec, caps)
	elapsed := time.Since(start)

	if s.metrics != nil {
		counts := make(map[string]int)
		for category, n := range report.Counts() {
			counts[string(category)] = n
		}
		s.metrics.RecordValidation(caps.Name, report.Valid(), counts, elapsed)
	}

	if cacheable && s.cache != nil && key != "" {
		if err := s.cache.Set(ctx, key, report); err != nil {
			s.logger.WithError(err).Warn("Failed to cache validation report")
		}
	}

	s.recordRun(ctx, spec, caps.Name, key, report)

	return &ValidateResponse{
		Device:     caps.Name,
		TaskHash:   key,
		Valid:      report.Valid(),
		Violations: report.Total(),
		Report:     report,
	}
}

func (s *Server) recordRun(ctx context.Context, spec *task.Spec, deviceName, key string, report *validator.Report) {
	counts := make(map[string]int)
	for category, n := range report.Counts() {
		if n > 0 {
			counts[string(category)] = n
		}
	}

	rec := &history.Record{
		Timestamp:  time.Now().UTC(),
		RequestID:  observability.GetRequestID(ctx),
		Device:     deviceName,
		TaskHash:   key,
		QubitCount: len(spec.Positions),
		Valid:      report.Valid(),
		Violations: report.Total(),
		Counts:     counts,
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.WithError(err).Error("Failed to record validation run")
		if s.metrics != nil {
			s.metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.HistoryWritesTotal.WithLabelValues("ok").Inc()
	}
}

func cacheBackendLabel(c cache.Cache) string {
	switch c.(type) {
	case *cache.RedisCache:
		return "redis"
	default:
		return "memory"
	}
}
