package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *Server {
	t.Helper()
	return NewServer(ServerOptions{Port: DefaultPort, Store: store})
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "Server is running", body.Message)

	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestScoresEndpoint(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{300, 900, 600} {
		_, err := store.SaveScore("blockfall", score, score/100, 1)
		require.NoError(t, err)
	}
	_, err := store.SaveScore("blockfall_sprint", 1200, 40, 4)
	require.NoError(t, err)

	srv := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/scores/blockfall", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body scoresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "blockfall", body.GameID)
	require.Len(t, body.Scores, 3)

	// Ordered by score descending, sprint scores excluded
	assert.Equal(t, 900, body.Scores[0].Score)
	assert.Equal(t, 600, body.Scores[1].Score)
	assert.Equal(t, 300, body.Scores[2].Score)
	assert.Equal(t, 9, body.Scores[0].Lines)
}

func TestScoresEndpointLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 5 {
		_, err := store.SaveScore("blockfall", (i+1)*100, i, 1)
		require.NoError(t, err)
	}

	srv := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/scores/blockfall?limit=2", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body scoresResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Scores, 2)
	assert.Equal(t, 500, body.Scores[0].Score)
}

func TestScoresEndpointBadLimit(t *testing.T) {
	srv := newTestServer(t, openTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/scores/blockfall?limit=abc", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoresEndpointWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/scores/blockfall", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveScore("blockfall", 800, 8, 1)
	require.NoError(t, err)
	_, err = store.SaveScore("blockfall", 200, 2, 1)
	require.NoError(t, err)

	srv := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/blockfall", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats storage.GameStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 800, stats.HighScore)
	assert.Equal(t, int64(10), stats.TotalLines)
	assert.InDelta(t, 500, stats.AvgScore, 0.01)
}

func TestStaticIndexEmbedded(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blockfall")
}

func TestStaticDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>custom</h1>"), 0o600))

	srv := NewServer(ServerOptions{Port: DefaultPort, StaticDir: dir})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "custom")
}

func TestResolvePort(t *testing.T) {
	assert.Equal(t, 8080, ResolvePort(8080))

	t.Setenv("PORT", "4000")
	assert.Equal(t, 4000, ResolvePort(0))

	t.Setenv("PORT", "not-a-port")
	assert.Equal(t, DefaultPort, ResolvePort(0))

	t.Setenv("PORT", "")
	assert.Equal(t, DefaultPort, ResolvePort(0))
}
