package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		source   string
		wantRoot string
		wantName string
	}{
		{"music/songs.json", "music", "songs.json"},
		{"songs.json", ".", "songs.json"},
		{"https://cdn.example.com/radio/songs.json?v=2", "https://cdn.example.com/radio/", "songs.json"},
	}

	for _, tt := range tests {
		root, name := Split(tt.source)
		assert.Equal(t, tt.wantRoot, root, tt.source)
		assert.Equal(t, tt.wantName, name, tt.source)
	}
}

func TestFetcher_Local(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "music"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "music", "a.mp3"), []byte("ID3"), 0o644))

	f, err := New(Config{Root: dir})
	require.NoError(t, err)
	assert.False(t, f.Remote())
	assert.Equal(t, filepath.Join(dir, "music", "a.mp3"), f.Resolve("music/a.mp3"))

	data, err := f.ReadAll(context.Background(), "music/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data))

	_, err = f.Open(context.Background(), "music/missing.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetcher_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/radio/music/a.mp3":
			fmt.Fprint(w, "ID3")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f, err := New(Config{Root: server.URL + "/radio"})
	require.NoError(t, err)
	assert.True(t, f.Remote())
	assert.Equal(t, server.URL+"/radio/music/a.mp3", f.Resolve("music/a.mp3"))

	data, err := f.ReadAll(context.Background(), "music/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data))

	_, err = f.ReadAll(context.Background(), "music/b.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetcher_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	f, err := New(Config{Root: server.URL, MaxRetries: 3})
	require.NoError(t, err)
	f.retryDelay = time.Millisecond

	data, err := f.ReadAll(context.Background(), "songs.json")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f, err := New(Config{Root: server.URL, MaxRetries: 3})
	require.NoError(t, err)
	f.retryDelay = time.Millisecond

	_, err = f.ReadAll(context.Background(), "songs.json")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&StatusError{Code: 429}))
	assert.True(t, isRetryable(&StatusError{Code: 502}))
	assert.False(t, isRetryable(&StatusError{Code: 404}))
	assert.False(t, isRetryable(nil))
}
