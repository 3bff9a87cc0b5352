package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_HTTPJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "Rex", "tags": ["good"]}`))
	}))
	defer srv.Close()

	v, err := New().Fetch(context.Background(), srv.URL+"/pet.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 7, "name": "Rex", "tags": []any{"good"}}, v)
}

func TestFetch_HTTPText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<pet>Rex</pet>"))
	}))
	defer srv.Close()

	v, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<pet>Rex</pet>", v)
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`1`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_RelativeFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "examples"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examples", "pet.json"), []byte(`[1, 2.5]`), 0o600))

	v, err := New(WithBaseDir(dir)).Fetch(context.Background(), "examples/pet.json")
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2.5}, v)

	abs := filepath.Join(dir, "examples", "pet.json")
	v, err = New(WithBaseDir("/elsewhere")).Fetch(context.Background(), abs)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2.5}, v)
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := New(WithBaseDir(t.TempDir())).Fetch(context.Background(), "nope.json")
	assert.Error(t, err)
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	_, err := New().Fetch(context.Background(), "ftp://example.com/pet.json")
	assert.ErrorIs(t, err, ErrUnsupportedURI)
}

func TestFetch_RelativeToURLBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/specs/examples/pet.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Rex"}`))
	}))
	defer srv.Close()

	v, err := New(WithBaseDir(srv.URL+"/specs")).Fetch(context.Background(), "examples/pet.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Rex"}, v)
}
