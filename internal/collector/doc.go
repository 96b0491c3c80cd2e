// Package collector implements the prometheus.Collector that turns the
// Dashboards status and stats documents into gauge metrics.
//
// Every Collect fetches both documents fresh, concurrently and
// independently. A failed fetch drops only the metrics derived from that
// document and sets the matching opensearch_dashboards_up series to 0; the
// other document's metrics are unaffected. Collect itself never fails, so
// the exporter's /metrics endpoint stays healthy while the upstream is
// down.
package collector
