package collector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osdash/opensearch-dashboards-exporter/internal/dashboards"
)

// Collector exports the Dashboards status and stats documents as gauges.
// It holds no state between scrapes; every Collect reflects a fresh pair
// of fetches.
type Collector struct {
	client *dashboards.Client
}

// New builds a Collector reading from client.
func New(client *dashboards.Client) *Collector {
	return &Collector{client: client}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- statusDesc
	ch <- statusesDesc
	for _, m := range statsMetrics {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector. The two documents are fetched
// concurrently, and a failure of one never suppresses the other: each
// document's metrics stand or fall on their own fetch.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var (
		wg        sync.WaitGroup
		status    *dashboards.StatusDocument
		stats     *dashboards.StatsDocument
		statusErr error
		statsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		status, statusErr = c.client.Status(context.Background())
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = c.client.Stats(context.Background())
	}()
	wg.Wait()

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue,
		boolValue(statusErr == nil), endpointStatus)
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue,
		boolValue(statsErr == nil), endpointStats)

	if statusErr != nil {
		slog.Warn("collector: status document unavailable",
			"url", c.client.BaseURL(), "err", statusErr)
	} else {
		c.collectStatus(ch, status)
	}

	if statsErr != nil {
		slog.Warn("collector: stats document unavailable",
			"url", c.client.BaseURL(), "err", statsErr)
	} else {
		c.collectStats(ch, stats)
	}
}

func (c *Collector) collectStatus(ch chan<- prometheus.Metric, doc *dashboards.StatusDocument) {
	overall := dashboards.LevelOf(doc.Status.Overall.State)
	ch <- prometheus.MustNewConstMetric(statusDesc, prometheus.GaugeValue, float64(overall))

	for _, comp := range doc.Status.Statuses {
		level := dashboards.LevelOf(comp.State)
		ch <- prometheus.MustNewConstMetric(statusesDesc, prometheus.GaugeValue,
			float64(level), comp.ID)
	}
}

func (c *Collector) collectStats(ch chan<- prometheus.Metric, doc *dashboards.StatsDocument) {
	for _, m := range statsMetrics {
		v := m.value(doc)
		if v == nil {
			slog.Debug("collector: stats field not reported by upstream", "metric", m.name)
			continue
		}
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.GaugeValue, *v)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
