package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	var captured string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, captured)
	assert.Equal(t, captured, rr.Header().Get("X-Request-ID"))
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestRecoverProducesEnvelope(t *testing.T) {
	h := RequestID(Recover(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/wrapper/abc", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, StatusFailed, env.Status)

	var msg string
	require.NoError(t, json.Unmarshal(env.Error, &msg))
	assert.Equal(t, "internal error", msg)
	assert.NotEmpty(t, env.Ref)
}
