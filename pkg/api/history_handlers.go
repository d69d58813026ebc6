package api

import (
	"net/http"

	"github.com/openqpu/pulsecheck/pkg/history"
	"github.com/openqpu/pulsecheck/pkg/httputil"
)

const maxHistoryPageSize = 500

// searchHistory handles GET /api/v1/history
func (s *Server) searchHistory(w http.ResponseWriter, r *http.Request) {
	filter := history.SearchFilter{
		Device:   httputil.ParseQueryString(r, "device", ""),
		TaskHash: httputil.ParseQueryString(r, "task_hash", ""),
	}

	if r.URL.Query().Has("valid") {
		valid, err := httputil.ParseQueryBool(r, "valid", false)
		if err != nil {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		filter.Valid = &valid
	}

	since, err := httputil.ParseQueryTime(r, "since")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	filter.Since = since

	until, err := httputil.ParseQueryTime(r, "until")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	filter.Until = until

	limit, err := httputil.ParseQueryInt(r, "limit", 50)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	if limit <= 0 || limit > maxHistoryPageSize {
		limit = 50
	}
	filter.Limit = limit

	offset, err := httputil.ParseQueryInt(r, "offset", 0)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	if offset < 0 {
		offset = 0
	}
	filter.Offset = offset

	records, err := s.recorder.Search(r.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("History search failed")
		httputil.WriteInternalError(w, err)
		return
	}

	switch httputil.ParseQueryString(r, "format", "json") {
	case "json":
		httputil.WriteSuccess(w, map[string]interface{}{
			"records": records,
			"count":   len(records),
		})
	case "csv":
		data, err := history.ExportCSV(records)
		if err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="validation_runs.csv"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		httputil.WriteBadRequest(w, "format must be json or csv")
	}
}

// historyStats handles GET /api/v1/history/stats
func (s *Server) historyStats(w http.ResponseWriter, r *http.Request) {
	since, err := httputil.ParseQueryTime(r, "since")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	until, err := httputil.ParseQueryTime(r, "until")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	stats, err := s.recorder.Stats(r.Context(), since, until)
	if err != nil {
		s.logger.WithError(err).Error("History stats failed")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, stats)
}
