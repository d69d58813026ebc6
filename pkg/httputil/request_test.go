package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestParseJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"device":"aquila-1"}`))

		var dest struct {
			Device string `json:"device"`
		}
		if err := ParseJSON(req, &dest); err != nil {
			t.Fatalf("ParseJSON returned error: %v", err)
		}
		if dest.Device != "aquila-1" {
			t.Errorf("Expected device aquila-1, got %s", dest.Device)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

		var dest map[string]interface{}
		if err := ParseJSON(req, &dest); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})
}

func TestParseJSONOrError(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))
	rr := httptest.NewRecorder()

	var dest map[string]interface{}
	if ParseJSONOrError(rr, req, &dest) {
		t.Error("Expected false for invalid JSON")
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestParsePathString(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/devices/aquila-1", nil)
		req = mux.SetURLVars(req, map[string]string{"name": "aquila-1"})

		val, err := ParsePathString(req, "name")
		if err != nil {
			t.Fatalf("ParsePathString returned error: %v", err)
		}
		if val != "aquila-1" {
			t.Errorf("Expected aquila-1, got %s", val)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/devices", nil)

		if _, err := ParsePathString(req, "name"); err == nil {
			t.Error("Expected error for missing path parameter")
		}
	})
}

func TestParseQueryInt(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/history?limit=25", nil)
		val, err := ParseQueryInt(req, "limit", 50)
		if err != nil {
			t.Fatalf("ParseQueryInt returned error: %v", err)
		}
		if val != 25 {
			t.Errorf("Expected 25, got %d", val)
		}
	})

	t.Run("default", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/history", nil)
		val, err := ParseQueryInt(req, "limit", 50)
		if err != nil {
			t.Fatalf("ParseQueryInt returned error: %v", err)
		}
		if val != 50 {
			t.Errorf("Expected default 50, got %d", val)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/history?limit=abc", nil)
		if _, err := ParseQueryInt(req, "limit", 50); err == nil {
			t.Error("Expected error for non-integer value")
		}
	})
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest("GET", "/history?valid=true", nil)
	val, err := ParseQueryBool(req, "valid", false)
	if err != nil {
		t.Fatalf("ParseQueryBool returned error: %v", err)
	}
	if !val {
		t.Error("Expected true")
	}

	req = httptest.NewRequest("GET", "/history", nil)
	val, err = ParseQueryBool(req, "valid", true)
	if err != nil {
		t.Fatalf("ParseQueryBool returned error: %v", err)
	}
	if !val {
		t.Error("Expected default true")
	}
}

func TestParseQueryTime(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/history?since=2026-01-02T15:04:05Z", nil)
		ts, err := ParseQueryTime(req, "since")
		if err != nil {
			t.Fatalf("ParseQueryTime returned error: %v", err)
		}
		want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
		if !ts.Equal(want) {
			t.Errorf("Expected %v, got %v", want, ts)
		}
	})

	t.Run("missing yields zero time", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/history", nil)
		ts, err := ParseQueryTime(req, "since")
		if err != nil {
			t.Fatalf("ParseQueryTime returned error: %v", err)
		}
		if !ts.IsZero() {
			t.Errorf("Expected zero time, got %v", ts)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/history?since=yesterday", nil)
		if _, err := ParseQueryTime(req, "since"); err == nil {
			t.Error("Expected error for invalid timestamp")
		}
	})
}
