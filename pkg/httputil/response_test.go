package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	err := WriteJSON(rr, http.StatusOK, map[string]string{"device": "aquila-1"})
	if err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal body: %v", err)
	}
	if body["device"] != "aquila-1" {
		t.Errorf("Expected device aquila-1, got %s", body["device"])
	}
}

func TestWriteErrorMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteErrorMessage(rr, http.StatusBadRequest, "invalid task document")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal body: %v", err)
	}
	if resp.Error != "invalid task document" {
		t.Errorf("Expected error message, got %s", resp.Error)
	}
}

func TestWriteErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantError  string
	}{
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter) { WriteBadRequest(w, "bad input") },
			wantStatus: http.StatusBadRequest,
			wantError:  "bad input",
		},
		{
			name:       "not found",
			write:      func(w http.ResponseWriter) { WriteNotFound(w, "unknown device profile") },
			wantStatus: http.StatusNotFound,
			wantError:  "unknown device profile",
		},
		{
			name:       "internal error",
			write:      func(w http.ResponseWriter) { WriteInternalError(w, errors.New("boom")) },
			wantStatus: http.StatusInternalServerError,
			wantError:  "boom",
		},
		{
			name:       "service unavailable",
			write:      func(w http.ResponseWriter) { WriteServiceUnavailable(w, "history store offline") },
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "history store offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.write(rr)

			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to unmarshal body: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, resp.Error)
			}
		})
	}
}

func TestWriteDetailedError(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteDetailedError(rr, http.StatusBadRequest, errors.New("validation failed"), map[string]string{
		"field": "positions",
	})

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal body: %v", err)
	}
	if resp.Error != "validation failed" {
		t.Errorf("Expected error 'validation failed', got %s", resp.Error)
	}
	if resp.Details["field"] != "positions" {
		t.Errorf("Expected detail field 'positions', got %s", resp.Details["field"])
	}
}
