package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithSuccess(rec, req, http.StatusOK, "", map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, StatusSuccess, env.Status)
	assert.Empty(t, env.Message)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, "value", data["key"])
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := SetTraceID(req.Context())
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	RespondWithError(rec, req, http.StatusNotFound, "Tasks not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, "Tasks not found", env.Message)
	assert.Equal(t, GetTraceID(ctx), env.TraceID)
	assert.Nil(t, env.Data)
}

func TestRespondWithErrorAndLogNeverLeaksRawError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	rawErr := errors.New("pq: connection to postgres://user:secret@db failed")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred", rawErr)

	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, rec.Body.String(), "postgres://")

	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "An unexpected error occurred", env.Message)
}

func TestTraceIDLifecycle(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	// Absent until middleware sets it.
	assert.Empty(t, GetTraceID(req.Context()))

	ctx := SetTraceID(req.Context())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)

	// Each request gets its own.
	other := GetTraceID(SetTraceID(req.Context()))
	assert.NotEqual(t, traceID, other)
}
