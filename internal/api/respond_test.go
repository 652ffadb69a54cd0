package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSONUnencodableValue(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]float64{"score": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("expected a complete JSON body: %v", err)
	}
	if resp.Code != "internal" {
		t.Errorf("expected code internal, got %s", resp.Code)
	}
	if !strings.Contains(logs.String(), "failed to encode response") {
		t.Errorf("expected encode failure to be logged, got %q", logs.String())
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusCreated, map[string]string{"id": "x"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	if strings.TrimSpace(w.Body.String()) != `{"id":"x"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}
