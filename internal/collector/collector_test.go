package collector_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prometheus/common/expfmt"

	"github.com/osdash/opensearch-dashboards-exporter/internal/collector"
	"github.com/osdash/opensearch-dashboards-exporter/internal/config"
	"github.com/osdash/opensearch-dashboards-exporter/internal/dashboards"
)

const statusBody = `{
  "status": {
    "overall": {"id": "overall", "state": "green"},
    "statuses": [
      {"id": "search", "state": "green"},
      {"id": "dashboard", "state": "red"},
      {"id": "plugin-x", "state": "purple"}
    ]
  }
}`

const statsBody = `{
  "concurrent_connections": 5,
  "process": {
    "uptime_in_millis": 120000,
    "event_loop_delay": 1.25,
    "memory": {
      "heap": {"total_in_bytes": 536870912, "used_in_bytes": 268435456, "size_limit": 1073741824},
      "resident_set_size_in_bytes": 367001600
    }
  },
  "os": {
    "load": {"1m": 0.42, "5m": 0.31, "15m": 0.25},
    "memory": {"total_in_bytes": 16777216000, "free_in_bytes": 8388608000, "used_in_bytes": 8388608000}
  },
  "response_times": {"avg_in_millis": 12.5, "max_in_millis": 210},
  "requests": {"disconnects": 3, "total": 1450}
}`

// newCollector builds a Collector against a fake upstream serving the given
// per-path bodies. A path with code != 0 responds with that status and no
// usable body.
func newCollector(t *testing.T, bodies map[string]string, codes map[string]int) *collector.Collector {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := codes[r.URL.Path]; code != 0 {
			w.WriteHeader(code)
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := dashboards.New(config.UpstreamConfig{URL: srv.URL, Timeout: 2 * time.Second})
	return collector.New(client)
}

func TestCollect_StatusMapping(t *testing.T) {
	c := newCollector(t, map[string]string{"/api/status": statusBody}, nil)

	// "purple" is not a recognized color and must read as unknown (-1),
	// not as an error or a dropped component.
	expected := `
# HELP opensearch_dashboards_status General state of the Dashboards cluster: 0 green, 1 yellow, 2 red, -1 unknown.
# TYPE opensearch_dashboards_status gauge
opensearch_dashboards_status 0
# HELP opensearch_dashboards_statuses Granular state of core components and plugins: 0 green, 1 yellow, 2 red, -1 unknown.
# TYPE opensearch_dashboards_statuses gauge
opensearch_dashboards_statuses{component="search"} 0
opensearch_dashboards_statuses{component="dashboard"} 2
opensearch_dashboards_statuses{component="plugin-x"} -1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"opensearch_dashboards_status", "opensearch_dashboards_statuses"); err != nil {
		t.Error(err)
	}
}

func TestCollect_StatsValuesVerbatim(t *testing.T) {
	c := newCollector(t, map[string]string{"/api/stats": statsBody}, nil)

	// Values pass through unconverted: milliseconds stay milliseconds,
	// bytes stay bytes.
	expected := `
# HELP opensearch_dashboards_current_connections Number of concurrent connections to the Dashboards server.
# TYPE opensearch_dashboards_current_connections gauge
opensearch_dashboards_current_connections 5
# HELP opensearch_dashboards_up_time Dashboards server uptime in milliseconds.
# TYPE opensearch_dashboards_up_time gauge
opensearch_dashboards_up_time 120000
# HELP opensearch_dashboards_heap_used Memory heap used in bytes.
# TYPE opensearch_dashboards_heap_used gauge
opensearch_dashboards_heap_used 2.68435456e+08
# HELP opensearch_dashboards_load_15m OS load average over fifteen minutes.
# TYPE opensearch_dashboards_load_15m gauge
opensearch_dashboards_load_15m 0.25
# HELP opensearch_dashboards_resp_time_avg Average response time in milliseconds.
# TYPE opensearch_dashboards_resp_time_avg gauge
opensearch_dashboards_resp_time_avg 12.5
# HELP opensearch_dashboards_req_total Total request count.
# TYPE opensearch_dashboards_req_total gauge
opensearch_dashboards_req_total 1450
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"opensearch_dashboards_current_connections",
		"opensearch_dashboards_up_time",
		"opensearch_dashboards_heap_used",
		"opensearch_dashboards_load_15m",
		"opensearch_dashboards_resp_time_avg",
		"opensearch_dashboards_req_total"); err != nil {
		t.Error(err)
	}
}

func TestCollect_StatusDownStatsUp(t *testing.T) {
	c := newCollector(t,
		map[string]string{"/api/stats": statsBody},
		map[string]int{"/api/status": http.StatusServiceUnavailable})

	expected := `
# HELP opensearch_dashboards_up Whether the Dashboards API endpoint is reachable (1 for up, 0 for down).
# TYPE opensearch_dashboards_up gauge
opensearch_dashboards_up{endpoint="status"} 0
opensearch_dashboards_up{endpoint="stats"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"opensearch_dashboards_up"); err != nil {
		t.Error(err)
	}

	if got := testutil.CollectAndCount(c,
		"opensearch_dashboards_status", "opensearch_dashboards_statuses"); got != 0 {
		t.Errorf("status-derived series = %d, want 0 when the status fetch fails", got)
	}
	if got := testutil.CollectAndCount(c, "opensearch_dashboards_req_total"); got != 1 {
		t.Errorf("req_total series = %d, want 1 despite the status fetch failing", got)
	}
}

func TestCollect_StatsDownStatusUp(t *testing.T) {
	c := newCollector(t,
		map[string]string{"/api/status": statusBody},
		map[string]int{"/api/stats": http.StatusBadGateway})

	if got := testutil.CollectAndCount(c, "opensearch_dashboards_statuses"); got != 3 {
		t.Errorf("granular series = %d, want one per sub-status entry (3)", got)
	}
	if got := testutil.CollectAndCount(c,
		"opensearch_dashboards_req_total", "opensearch_dashboards_heap_used"); got != 0 {
		t.Errorf("stats-derived series = %d, want 0 when the stats fetch fails", got)
	}
}

func TestCollect_BothDown(t *testing.T) {
	client := dashboards.New(config.UpstreamConfig{
		URL:     "http://127.0.0.1:1",
		Timeout: time.Second,
	})
	c := collector.New(client)

	// Only the two up series remain; the scrape itself still succeeds.
	expected := `
# HELP opensearch_dashboards_up Whether the Dashboards API endpoint is reachable (1 for up, 0 for down).
# TYPE opensearch_dashboards_up gauge
opensearch_dashboards_up{endpoint="status"} 0
opensearch_dashboards_up{endpoint="stats"} 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
	if got := testutil.CollectAndCount(c); got != 2 {
		t.Errorf("total series = %d, want exactly the 2 up series", got)
	}
}

func TestCollect_AbsentOptionalSection(t *testing.T) {
	body := `{"concurrent_connections": 2, "requests": {"disconnects": 0, "total": 10}}`
	c := newCollector(t, map[string]string{"/api/stats": body}, nil)

	if got := testutil.CollectAndCount(c,
		"opensearch_dashboards_load_1m",
		"opensearch_dashboards_os_mem_total",
		"opensearch_dashboards_heap_total"); got != 0 {
		t.Errorf("series from absent sections = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(c,
		"opensearch_dashboards_current_connections",
		"opensearch_dashboards_req_total"); got != 2 {
		t.Errorf("series from present fields = %d, want 2", got)
	}
}

func TestCollect_Idempotent(t *testing.T) {
	c := newCollector(t, map[string]string{
		"/api/status": statusBody,
		"/api/stats":  statsBody,
	}, nil)

	first := collect(t, c)
	second := collect(t, c)
	if !strings.Contains(first, "opensearch_dashboards_statuses") {
		t.Fatalf("collection missing granular series:\n%s", first)
	}
	if first != second {
		t.Errorf("consecutive collections differ:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

// collect renders one full collection in the text format.
func collect(t *testing.T, c prometheus.Collector) string {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("register collector: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			t.Fatalf("encode %s: %v", mf.GetName(), err)
		}
	}
	if buf.Len() == 0 {
		t.Fatal("collection produced no output")
	}
	return buf.String()
}

func TestDescribe_CoversAllMetrics(t *testing.T) {
	c := newCollector(t, nil, nil)

	ch := make(chan *prometheus.Desc, 64)
	c.Describe(ch)
	close(ch)

	var n int
	for range ch {
		n++
	}
	// up + status + statuses + 17 stats gauges.
	if n != 20 {
		t.Errorf("Describe sent %d descriptors, want 20", n)
	}
}
