package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsebot/internal/app"
	"fsebot/internal/config"
	"fsebot/internal/testutils"
)

type smokeEmbedder struct{}

func (smokeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{0.9, 0.1}, nil
}

type smokeGenerator struct{}

func (smokeGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "Sesiunea incepe pe 26 ianuarie.", nil
}

func TestSmoke_ChatFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping smoke test in short mode")
	}

	suite := testutils.NewIntegrationSuite(t)
	suite.Setup()
	defer suite.Teardown()

	ctx := context.Background()
	_, err := suite.DB.ExecContext(ctx,
		`INSERT INTO embeddings (source, content, embedding) VALUES ($1, $2, $3), ($4, $5, $6)`,
		"calendar.txt", "Exam session starts Jan 26", pq.Float64Array{1, 0},
		"camine.txt", "Dorm capacity is 200", pq.Float64Array{0, 1},
	)
	require.NoError(t, err)

	dir := t.TempDir()
	mappings := filepath.Join(dir, "url_mappings.json")
	require.NoError(t, os.WriteFile(mappings, []byte(
		`{"source_to_url":{"calendar.txt":"https://economice.ulbsibiu.ro/calendar"},"fallback_url":"https://economice.ulbsibiu.ro/"}`,
	), 0o644))

	cfg := &config.Config{
		TopK:                5,
		SimilarityThreshold: 0.55,
		ConfidenceHigh:      0.65,
		ConfidenceMedium:    0.57,
		ServerPort:          5001,
		URLMappingsPath:     mappings,
		QueryLogPath:        filepath.Join(dir, "query.log"),
	}

	a, err := app.New(cfg, suite.DB, smokeEmbedder{}, smokeGenerator{})
	require.NoError(t, err)

	n, err := a.Reloader.Reload(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Health reflects the loaded corpus.
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"embeddings_loaded":2`)

	// Full chat round trip.
	w = httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"cand incepe sesiunea","session_id":"smoke"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sesiunea incepe pe 26 ianuarie.", resp["response"])
	assert.Equal(t, "calendar.txt", resp["source"])
	assert.Equal(t, "https://economice.ulbsibiu.ro/calendar", resp["url"])
	assert.Equal(t, "high", resp["confidence"])
	assert.Equal(t, float64(1), resp["chunks_used"])
	assert.NotEmpty(t, resp["message_id"])

	// Transcript persisted.
	var count int
	require.NoError(t, suite.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE session_id = 'smoke'`).Scan(&count))
	assert.Equal(t, 1, count)

	// Reload endpoint reports the corpus size.
	w = httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reload-embeddings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"embeddings_loaded":2`)
}
