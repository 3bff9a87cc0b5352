package httputil

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		data := map[string]string{"foo": "bar"}

		WriteJSON(rec, http.StatusOK, data)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "bar", result["foo"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("writes error response with correct format", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteError(rec, http.StatusNotFound, "not_found", "no operation for GET /owners")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "not_found", result["error"])
		assert.Equal(t, "no operation for GET /owners", result["message"])
		assert.NotContains(t, result, "requestId")
		assert.NotContains(t, result, "details")
	})

	t.Run("echoes the request id", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rec.Header().Set("X-Request-Id", "req-1")

		WriteErrorWithDetails(rec, http.StatusBadRequest, "invalid_request", "bad query", []string{"limit"})

		var result ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "req-1", result.RequestID)
		assert.Equal(t, []any{"limit"}, result.Details)
	})
}

func TestIsJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"Application/JSON":                true,
		"application/problem+json":        true,
		"application/vnd.pet+json":        true,
		"text/plain":                      false,
		"application/xml":                 false,
		"":                                false,
	}
	for ct, want := range tests {
		assert.Equal(t, want, IsJSON(ct), ct)
	}
}

func TestEncodeBody(t *testing.T) {
	t.Parallel()

	b, err := EncodeBody("text/plain", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	b, err = EncodeBody("application/json", "hello")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(b))

	b, err = EncodeBody("text/plain", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(b))

	_, err = EncodeBody("application/json", math.Inf(1))
	assert.Error(t, err)
}

func TestWriteBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, WriteBody(rec, http.StatusCreated, "application/vnd.pet+json", map[string]any{"id": 1}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/vnd.pet+json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestHeaderValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", HeaderValue(nil))
	assert.Equal(t, "abc", HeaderValue("abc"))
	assert.Equal(t, "42", HeaderValue(42))
	assert.Equal(t, "1.5", HeaderValue(1.5))
	assert.Equal(t, "true", HeaderValue(true))
	assert.Equal(t, `[1,2]`, HeaderValue([]any{1, 2}))
	assert.Equal(t, `{"a":"b"}`, HeaderValue(map[string]any{"a": "b"}))
}

func TestWriteNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteNoContent(rec, http.StatusNoContent)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
