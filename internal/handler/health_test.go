package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/itembox/internal/handler"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	// Liveness must not depend on the store.
	h := handler.NewHealthHandler(&pingerMock{err: errors.New("down")})

	rr := httptest.NewRecorder()
	h.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var raw map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	assert.Equal(t, "healthy", raw["status"])

	ts, err := time.Parse(time.RFC3339Nano, raw["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestHealthHandler_HandleReady(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{name: "store up", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "store down", err: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(&pingerMock{err: tt.err})

			rr := httptest.NewRecorder()
			h.HandleReady(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			var resp handler.HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}
