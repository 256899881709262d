package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher() *Fetcher {
	// A generous ceiling so tests are not pacing-bound.
	return NewFetcher(NewLimiter(1000))
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "INV-1.pdf")
	result := testFetcher().Fetch(context.Background(), server.URL, dest)

	require.False(t, result.Dropped)
	assert.Equal(t, dest, result.Path)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestFetch_RetriesExactlySixAttempts(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "INV-1.pdf")
	result := testFetcher().Fetch(context.Background(), server.URL, dest)

	assert.True(t, result.Dropped)
	assert.Error(t, result.Reason)
	assert.Equal(t, int32(6), attempts.Load())

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err), "destination file should be absent after a dropped fetch")
}

func TestFetch_RecoversWithinRetryBudget(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 4 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "INV-1.pdf")
	result := testFetcher().Fetch(context.Background(), server.URL, dest)

	require.False(t, result.Dropped)
	assert.Equal(t, int32(4), attempts.Load())
	assert.FileExists(t, dest)
}

func TestFetch_EmptyURLIsDropped(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "INV-1.pdf")
	result := testFetcher().Fetch(context.Background(), "", dest)

	assert.True(t, result.Dropped)
	assert.Error(t, result.Reason)

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestFetch_UnreachableHostIsDroppedNotFatal(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "INV-1.pdf")

	// Never panics or blocks forever; it settles as a drop.
	result := testFetcher().Fetch(context.Background(), "http://127.0.0.1:1", dest)

	assert.True(t, result.Dropped)
	assert.Error(t, result.Reason)
}
