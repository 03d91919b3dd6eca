//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// AssertSuccessResponse checks the status and decodes a 2xx body into target.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && target != nil {
		require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "undecodable body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the error message contains
// expectedMsg. The raw detail payload is returned for further checks.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) json.RawMessage {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var env errorEnvelope
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &env), "undecodable error body: %s", w.Body.String())
	if expectedMsg != "" {
		assert.Contains(t, env.Error.Message, expectedMsg)
	}
	return env.Detail
}
