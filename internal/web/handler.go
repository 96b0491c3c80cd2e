package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const landingPage = `<html>
<head><title>OpenSearch Dashboards Exporter</title></head>
<body>
<h1>OpenSearch Dashboards Exporter</h1>
<p><a href="/metrics">Metrics</a></p>
</body>
</html>
`

// Handler is the exporter's HTTP surface: /metrics plus a landing page.
type Handler struct {
	mux *http.ServeMux
}

// New wires the metrics endpoint for the given registry and registers all
// routes. ContinueOnError keeps /metrics answering even if a collector
// misbehaves; upstream unavailability must never turn into a 5xx here.
func New(reg *prometheus.Registry) http.Handler {
	h := &Handler{mux: http.NewServeMux()}

	h.mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
		ErrorLog:      slogPrinter{},
	}))
	h.mux.HandleFunc("/", h.landing)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// landing serves GET / — a static page linking to /metrics. The "/" route
// is the mux catch-all, so everything unregistered ends up here too.
func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, landingPage)
}

// slogPrinter adapts slog to promhttp's print-style logger.
type slogPrinter struct{}

func (slogPrinter) Println(v ...interface{}) {
	slog.Error("web: metrics handler error", "msg", fmt.Sprintln(v...))
}
