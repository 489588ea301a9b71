package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PerformRequest runs one request through engine. body, when non-nil, is
// sent as JSON.
func PerformRequest(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader
	if body != nil {
		payload = ToJSONReader(t, body)
	}
	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

// DecodeJSONAs unmarshals the recorded body into a T, failing the test on
// malformed JSON.
func DecodeJSONAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "response is not JSON: %s", w.Body.String())
	return out
}

func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	return DecodeJSONAs[map[string]any](t, w)
}

// DataMap returns the "data" object of a success envelope.
func DataMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := DecodeJSON(t, w)["data"].(map[string]any)
	require.True(t, ok, "no data object in %s", w.Body.String())
	return data
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	body := DecodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "error")
}

// AssertErrorResponse checks the status and the envelope's error code.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	body := DecodeJSON(t, w)
	assert.Equal(t, false, body["success"])

	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "no error object in %s", w.Body.String())
	assert.Equal(t, code, errObj["code"])
}

func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// AuthHeader returns a bearer authorization header for token.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
