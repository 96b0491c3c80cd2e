package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/osdash/opensearch-dashboards-exporter/internal/dashboards"
)

// namespace prefixes every exported metric. Names and label keys are a
// compatibility contract with existing dashboards and alert rules; do not
// rename them.
const namespace = "opensearch_dashboards"

const (
	endpointStatus = "status"
	endpointStats  = "stats"

	componentLabel = "component"
)

var (
	upDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "up"),
		"Whether the Dashboards API endpoint is reachable (1 for up, 0 for down).",
		[]string{"endpoint"}, nil,
	)
	statusDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "status"),
		"General state of the Dashboards cluster: 0 green, 1 yellow, 2 red, -1 unknown.",
		nil, nil,
	)
	statusesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "statuses"),
		"Granular state of core components and plugins: 0 green, 1 yellow, 2 red, -1 unknown.",
		[]string{componentLabel}, nil,
	)
)

// statsMetric binds one gauge to the stats document field that feeds it.
// A nil value means the upstream did not report the field, and the gauge
// is omitted from that scrape.
type statsMetric struct {
	name  string
	desc  *prometheus.Desc
	value func(*dashboards.StatsDocument) *float64
}

func newStatsMetric(name, help string, value func(*dashboards.StatsDocument) *float64) statsMetric {
	return statsMetric{
		name:  name,
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil),
		value: value,
	}
}

var statsMetrics = []statsMetric{
	newStatsMetric("current_connections",
		"Number of concurrent connections to the Dashboards server.",
		func(d *dashboards.StatsDocument) *float64 { return d.ConcurrentConnections }),
	newStatsMetric("up_time",
		"Dashboards server uptime in milliseconds.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.Process == nil {
				return nil
			}
			return d.Process.UptimeInMillis
		}),
	newStatsMetric("event_loop_delay",
		"Event loop delay in milliseconds.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.Process == nil {
				return nil
			}
			return d.Process.EventLoopDelay
		}),
	newStatsMetric("heap_total",
		"Memory heap total in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if h := d.Heap(); h != nil {
				return h.TotalInBytes
			}
			return nil
		}),
	newStatsMetric("heap_used",
		"Memory heap used in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if h := d.Heap(); h != nil {
				return h.UsedInBytes
			}
			return nil
		}),
	newStatsMetric("heap_size",
		"Memory heap size limit in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if h := d.Heap(); h != nil {
				return h.SizeLimit
			}
			return nil
		}),
	newStatsMetric("re_set_size",
		"Resident set size in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.Process == nil || d.Process.Memory == nil {
				return nil
			}
			return d.Process.Memory.ResidentSetSizeInBytes
		}),
	newStatsMetric("load_1m",
		"OS load average over one minute.",
		func(d *dashboards.StatsDocument) *float64 {
			if l := d.Load(); l != nil {
				return l.OneM
			}
			return nil
		}),
	newStatsMetric("load_5m",
		"OS load average over five minutes.",
		func(d *dashboards.StatsDocument) *float64 {
			if l := d.Load(); l != nil {
				return l.FiveM
			}
			return nil
		}),
	newStatsMetric("load_15m",
		"OS load average over fifteen minutes.",
		func(d *dashboards.StatsDocument) *float64 {
			if l := d.Load(); l != nil {
				return l.FifteenM
			}
			return nil
		}),
	newStatsMetric("os_mem_total",
		"OS memory total in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if m := d.OSMemory(); m != nil {
				return m.TotalInBytes
			}
			return nil
		}),
	newStatsMetric("os_mem_free",
		"OS memory free in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if m := d.OSMemory(); m != nil {
				return m.FreeInBytes
			}
			return nil
		}),
	newStatsMetric("os_mem_used",
		"OS memory used in bytes.",
		func(d *dashboards.StatsDocument) *float64 {
			if m := d.OSMemory(); m != nil {
				return m.UsedInBytes
			}
			return nil
		}),
	newStatsMetric("resp_time_avg",
		"Average response time in milliseconds.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.ResponseTimes == nil {
				return nil
			}
			return d.ResponseTimes.AvgInMillis
		}),
	newStatsMetric("resp_time_max",
		"Maximum response time in milliseconds.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.ResponseTimes == nil {
				return nil
			}
			return d.ResponseTimes.MaxInMillis
		}),
	newStatsMetric("req_disconnects",
		"Request disconnect count.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.Requests == nil {
				return nil
			}
			return d.Requests.Disconnects
		}),
	newStatsMetric("req_total",
		"Total request count.",
		func(d *dashboards.StatsDocument) *float64 {
			if d.Requests == nil {
				return nil
			}
			return d.Requests.Total
		}),
}
