package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "molgraph"}, logging.NewNopLogger())
	require.NoError(t, err)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_RegistersAllMetrics(t *testing.T) {
	m, _ := newTestAppMetrics(t)

	require.NotNil(t, m.HTTPRequestsTotal)
	require.NotNil(t, m.ParseTotal)
	require.NotNil(t, m.ComparisonsTotal)
	require.NotNil(t, m.SearchNodesExpanded)
	require.NotNil(t, m.CacheHitsTotal)
	require.NotNil(t, m.ErrorsTotal)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordHTTPRequest(m, "POST", "/api/v1/compare/gls", 200, 35*time.Millisecond, 256, 128)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `molgraph_http_requests_total{method="POST",path="/api/v1/compare/gls",status_code="200"} 1`)
	assert.Contains(t, output, "molgraph_http_request_duration_seconds_bucket")
}

func TestRecordParse(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordParse(m, "smiles", 9, time.Millisecond, nil)
	RecordParse(m, "smiles", 0, time.Millisecond, errors.New("unclosed ring"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `molgraph_parse_total{format="smiles",status="success"} 1`)
	assert.Contains(t, output, `molgraph_parse_total{format="smiles",status="failure"} 1`)
	// Atom count is only observed on success.
	assert.Contains(t, output, `molgraph_parsed_atoms_count{format="smiles"} 1`)
}

func TestRecordComparison(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordComparison(m, "gls", 10*time.Millisecond, nil)
	RecordComparison(m, "gls", time.Millisecond, errors.New("too large"))
	RecordComparison(m, "exact", time.Millisecond, nil)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `molgraph_comparisons_total{operation="gls",status="success"} 1`)
	assert.Contains(t, output, `molgraph_comparisons_total{operation="gls",status="failure"} 1`)
	assert.Contains(t, output, `molgraph_comparisons_total{operation="exact",status="success"} 1`)
}

func TestRecordSearch(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordSearch(m, "mcis", 1234, true)
	RecordSearch(m, "mcis", 5000000, false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `molgraph_search_exhausted_total{exhaustive="true",operation="mcis"} 1`)
	assert.Contains(t, output, `molgraph_search_exhausted_total{exhaustive="false",operation="mcis"} 1`)
	assert.Contains(t, output, `molgraph_search_nodes_expanded_count{operation="mcis"} 2`)
}

func TestRecordCacheAccess(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordCacheAccess(m, "graph_lru", true)
	RecordCacheAccess(m, "graph_lru", true)
	RecordCacheAccess(m, "graph_lru", false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `molgraph_cache_hits_total{cache="graph_lru"} 2`)
	assert.Contains(t, output, `molgraph_cache_misses_total{cache="graph_lru"} 1`)
}

func TestRecordError(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordError(m, "compare", "parse_error", "warning")

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `molgraph_errors_total{component="compare",error_type="parse_error",severity="warning"} 1`)
}
