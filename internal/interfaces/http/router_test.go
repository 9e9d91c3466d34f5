package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/application/compare"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.EngineConfig{
		MaxAtoms:       config.DefaultMaxAtoms,
		DefaultTimeout: 2 * time.Second,
		BatchWorkers:   2,
	}
	svc, err := compare.NewService(cfg, logging.NewNopLogger())
	require.NoError(t, err)
	return NewRouter(RouterConfig{
		Handler: NewCompareHandler(svc),
		Logger:  logging.NewNopLogger(),
		Mode:    "test",
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompareExact(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/exact", map[string]interface{}{
		"a": map[string]string{"text": "CCO"},
		"b": map[string]string{"text": "OCC"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res compare.MatchResult
	decodeBody(t, w, &res)
	assert.True(t, res.Matched)
}

func TestCompareSubstructure(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/substructure", map[string]interface{}{
		"a": map[string]string{"text": "c1ccccc1", "format": "smarts"},
		"b": map[string]string{"text": "Cc1ccccc1"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res compare.MatchResult
	decodeBody(t, w, &res)
	assert.True(t, res.Matched)
}

func TestCompareMCS(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/mcs", map[string]interface{}{
		"a":    map[string]string{"text": "CCC"},
		"b":    map[string]string{"text": "C1CCC1"},
		"kind": "induced",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res compare.CommonResult
	decodeBody(t, w, &res)
	assert.Equal(t, 3, res.Size)
	assert.True(t, res.Exhaustive)
}

func TestCompareScore_GLS(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/score", map[string]interface{}{
		"a":      map[string]string{"text": "c1ccccc1"},
		"b":      map[string]string{"text": "Cc1ccccc1"},
		"metric": "gls",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res compare.ScoreResult
	decodeBody(t, w, &res)
	assert.InDelta(t, 0.75, res.Score, 1e-9)
}

func TestCompareScore_UnknownMetric(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/score", map[string]interface{}{
		"a":      map[string]string{"text": "C"},
		"b":      map[string]string{"text": "C"},
		"metric": "cosine",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareBatch(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/batch", map[string]interface{}{
		"reference": map[string]string{"text": "c1ccccc1"},
		"candidates": []map[string]string{
			{"text": "c1ccccc1"},
			{"text": "not-a-molecule!"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res compare.BatchResult
	decodeBody(t, w, &res)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Failed)
	assert.NotNil(t, res.Items[0].Result)
	assert.NotEmpty(t, res.Items[1].Error)
}

func TestCompareBatch_EmptyCandidates(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/compare/batch", map[string]interface{}{
		"reference":  map[string]string{"text": "C"},
		"candidates": []map[string]string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoleculesInspect(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/molecules/inspect?text=CCO", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info compare.MoleculeInfo
	decodeBody(t, w, &info)
	assert.Equal(t, 3, info.Atoms)
	assert.Equal(t, 2, info.Bonds)
}

func TestMoleculesInspect_MissingText(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/molecules/inspect", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoleculesInspect_ParseError(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/molecules/inspect?text=C1(", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body errorResponse
	decodeBody(t, w, &body)
	assert.NotEmpty(t, body.Code)
	assert.NotEmpty(t, body.Message)
}

func TestMoleculesRender_DOT(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/molecules/render", map[string]string{
		"text":   "CCO",
		"output": "dot",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph mol")
}

func TestRequestIDEchoed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(headerRequestID, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(headerRequestID))
}

func TestRequestIDGenerated(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "GET", "/healthz", nil)
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/compare/exact", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
